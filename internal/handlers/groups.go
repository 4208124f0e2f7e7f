package handlers

import (
	"net/http"

	"milestone-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

//
// ОТДЕЛЫ
//

func (h *Handler) ListDepartments(c *gin.Context) {
	depts, err := h.svc.Departments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, depts)
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var in service.GroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.UserID = userID(c, in.UserID)

	d, err := h.svc.CreateDepartment(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	var in service.GroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.UserID = userID(c, in.UserID)

	d, err := h.svc.RenameDepartment(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteDepartment(c.Request.Context(), id, userID(c, "")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

//
// КОМАНДЫ
//

func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.svc.Teams(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *Handler) CreateTeam(c *gin.Context) {
	var in service.GroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.UserID = userID(c, in.UserID)

	t, err := h.svc.CreateTeam(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateTeam(c *gin.Context) {
	var in service.GroupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	in.UserID = userID(c, in.UserID)

	t, err := h.svc.RenameTeam(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTeam(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteTeam(c.Request.Context(), id, userID(c, "")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
