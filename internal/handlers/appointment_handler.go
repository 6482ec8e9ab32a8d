package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/massage-scheduler/internal/domain"
	"github.com/BruksfildServices01/massage-scheduler/internal/dto"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/massage-scheduler/internal/messaging"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/massage-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentUseCases bundles what the appointment routes call.
type AppointmentUseCases struct {
	Create    *ucAppointment.CreateAppointment
	Recurring *ucAppointment.CreateRecurring
	Update    *ucAppointment.UpdateAppointment
	SetStatus *ucAppointment.SetAppointmentStatus
	Delete    *ucAppointment.DeleteAppointment
	Get       *ucAppointment.GetAppointment
	ByDate    *ucAppointment.ListAppointmentsByDate
	ByMonth   *ucAppointment.ListAppointmentsByMonth
	DayCounts *ucAppointment.DayCounts
	Upcoming  *ucAppointment.ListUpcoming
}

type AppointmentHandler struct {
	uc  AppointmentUseCases
	loc *time.Location
}

func NewAppointmentHandler(uc AppointmentUseCases, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Start     string `json:"start" binding:"required"`
	Notes     string `json:"notes"`

	// minutes before start; omitted uses the default, negative disables
	ReminderMin *int `json:"reminder_min"`
}

type RecurringRequest struct {
	AppointmentRequest
	Rule string `json:"rule" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AppointmentHandler) bindInput(c *gin.Context, req *AppointmentRequest) (ucAppointment.CreateAppointmentInput, bool) {
	start, err := timezone.ParseDateTime(req.Start, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Use RFC 3339 or YYYY-MM-DD HH:MM.")
		return ucAppointment.CreateAppointmentInput{}, false
	}
	return ucAppointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		Start:       start,
		Notes:       req.Notes,
		ReminderMin: req.ReminderMin,
	}, true
}

// ======================================================
// WRITES
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, ok := h.bindInput(c, &req)
	if !ok {
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointment")
		return
	}

	view, err := h.uc.Get.Execute(c.Request.Context(), ap.ID)
	if err != nil {
		httperr.Respond(c, err, "failed_to_load_appointment")
		return
	}
	httpresp.Created(c, view)
}

// CreateRecurring books every free occurrence of the rule and lists the
// occurrences that collided.
func (h *AppointmentHandler) CreateRecurring(c *gin.Context) {
	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, ok := h.bindInput(c, &req.AppointmentRequest)
	if !ok {
		return
	}

	res, err := h.uc.Recurring.Execute(c.Request.Context(), ucAppointment.CreateRecurringInput{
		CreateAppointmentInput: in,
		Rule:                   req.Rule,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointments")
		return
	}

	conflicts := make([]time.Time, 0, len(res.Conflicts))
	for _, t := range res.Conflicts {
		conflicts = append(conflicts, t.In(h.loc))
	}

	httpresp.Created(c, gin.H{
		"created":   res.Created,
		"conflicts": conflicts,
	})
}

// Update of a missing appointment answers 204 without changing anything.
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in, ok := h.bindInput(c, &req)
	if !ok {
		return
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:                     id,
		CreateAppointmentInput: in,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_appointment")
		return
	}
	if ap == nil {
		httpresp.NoContent(c)
		return
	}
	httpresp.OK(c, dto.NewAppointmentView(ap, h.loc))
}

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.uc.SetStatus.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_status")
		return
	}
	if ap == nil {
		httpresp.NoContent(c)
		return
	}
	httpresp.OK(c, dto.NewAppointmentView(ap, h.loc))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err, "failed_to_delete_appointment")
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// READS
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.uc.Get.Execute(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_appointment")
		return
	}
	httpresp.OK(c, view)
}

// ListByDate lists ?date=YYYY-MM-DD, today when omitted.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, ok := queryDate(c, "date", h.loc)
	if !ok {
		return
	}
	day := time.Now().In(h.loc)
	if date != nil {
		day = *date
	}

	views, err := h.uc.ByDate.Execute(c.Request.Context(), day)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, month, ok := yearMonth(c, h.loc)
	if !ok {
		return
	}

	views, err := h.uc.ByMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) DayCounts(c *gin.Context) {
	year, month, ok := yearMonth(c, h.loc)
	if !ok {
		return
	}

	counts, err := h.uc.DayCounts.Execute(c.Request.Context(), year, month, c.Query("status"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_count_appointments")
		return
	}
	httpresp.List(c, counts)
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}

	views, err := h.uc.Upcoming.Execute(c.Request.Context(), limit)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, views)
}

// MessageLink builds a WhatsApp reminder for the appointment's client.
func (h *AppointmentHandler) MessageLink(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.uc.Get.Execute(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_appointment")
		return
	}

	service := ""
	if view.ServiceName != nil {
		service = *view.ServiceName
	}
	text := messaging.AppointmentMessage(view.ClientName, service, view.StartTime.In(h.loc))

	link, err := messaging.WhatsAppLink(view.ClientPhone, text)
	if err != nil {
		httperr.Respond(c, err, "failed_to_build_link")
		return
	}

	httpresp.OK(c, gin.H{"url": link, "text": text})
}
