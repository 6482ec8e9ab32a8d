package messaging

import (
	"fmt"
	"strings"
	"time"
)

type Template string

const (
	TemplateGreeting    Template = "greeting"
	TemplateConfirm     Template = "confirm"
	TemplateReschedule  Template = "reschedule"
	TemplatePostSession Template = "post_session"
)

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04"
)

func ParseTemplate(s string) (Template, bool) {
	switch t := Template(strings.ToLower(strings.TrimSpace(s))); t {
	case TemplateGreeting, TemplateConfirm, TemplateReschedule, TemplatePostSession:
		return t, true
	case "":
		return TemplateGreeting, true
	default:
		return "", false
	}
}

// ClientMessage renders a template addressed to clientName.
func ClientMessage(t Template, clientName, business string) string {
	switch t {
	case TemplateConfirm:
		return fmt.Sprintf("Hi %s, can you confirm your massage appointment? "+
			"If you need to change the time, just let me know here 🙂", clientName)
	case TemplateReschedule:
		return fmt.Sprintf("Hi %s, can we reschedule your appointment? "+
			"Send me the days and times that work for you and we'll sort it out.", clientName)
	case TemplatePostSession:
		return fmt.Sprintf("Thanks for coming today, %s! 🙌 "+
			"If you feel any discomfort or have a question, write to me.", clientName)
	default:
		return fmt.Sprintf("Hi %s, this is %s ✨", clientName, business)
	}
}

// AppointmentMessage reminds a client of a specific appointment.
func AppointmentMessage(clientName, serviceName string, start time.Time) string {
	what := "your appointment"
	if serviceName != "" {
		what = serviceName
	}
	return fmt.Sprintf("Hi %s, a reminder of %s on %s at %s. "+
		"If you need to change the time, just let me know here 🙂",
		clientName, what, start.Format(dateLayout), start.Format(timeLayout))
}

// ReminderTitle and ReminderText form the local reminder notification.
const ReminderTitle = "Appointment reminder"

// ReminderText omits the parts whose names are unknown.
func ReminderText(serviceName, clientName string, start time.Time) string {
	var b strings.Builder
	b.WriteString("Appointment ")
	if serviceName != "" {
		b.WriteString("for " + serviceName + " ")
	}
	if clientName != "" {
		b.WriteString("with " + clientName + " ")
	}
	fmt.Fprintf(&b, "today %s at %s.", start.Format(dateLayout), start.Format(timeLayout))
	return b.String()
}
