package handlers

import (

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/massage-scheduler/internal/backup"
	"github.com/BruksfildServices01/massage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/massage-scheduler/internal/httpresp"
)

type BackupHandler struct {
	backups *backup.Service
}

func NewBackupHandler(backups *backup.Service) *BackupHandler {
	return &BackupHandler{backups: backups}
}

func (h *BackupHandler) Run(c *gin.Context) {
	location, err := h.backups.Run(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "backup_failed")
		return
	}
	httpresp.Created(c, gin.H{"location": location})
}
