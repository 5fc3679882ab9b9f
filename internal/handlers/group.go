package handlers

import (
	"net/http"
	"yatube/internal/db"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct{}

func NewGroupHandler() *GroupHandler {
	return &GroupHandler{}
}

// ListGroups shows the group directory.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)

	Render(c, http.StatusOK, "posts/groups.html", gin.H{
		"Groups": groups,
		"Title":  "Groups",
		"Active": "groups",
	})
}
