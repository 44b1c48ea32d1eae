package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
	"github.com/leodalati/Employee-Record-Management-System/internal/dto"
	"github.com/leodalati/Employee-Record-Management-System/internal/service"
	"github.com/leodalati/Employee-Record-Management-System/internal/views"
)

// ListPath is the employee record list; every write redirects here.
const ListPath = "/employee_records"

const (
	MsgCreated = "Employee record created."
	MsgUpdated = "Employee record updated."
	MsgDeleted = "Employee record deleted."
)

type EmployeeHandler struct {
	svc *service.EmployeeService
	web *Web
}

func NewEmployeeHandler(svc *service.EmployeeService, web *Web) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, web: web}
}

// List renders every record.
func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.web.Fail(c, err)
		return
	}
	h.web.Render(c, http.StatusOK, views.PageEmployeeList, "Employee records", dto.NewEmployeeViews(list))
}

func (h *EmployeeHandler) CreateForm(c *gin.Context) {
	h.web.Render(c, http.StatusOK, views.PageEmployeeCreate, "New employee record", dto.EmployeeView{})
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	fields, ok := h.bind(c)
	if !ok {
		return
	}
	if _, err := h.svc.Create(c.Request.Context(), fields); err != nil {
		h.web.Fail(c, err)
		return
	}
	h.web.RedirectWithFlash(c, ListPath, MsgCreated)
}

func (h *EmployeeHandler) EditForm(c *gin.Context) {
	e, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.web.Fail(c, err)
		return
	}
	h.web.Render(c, http.StatusOK, views.PageEmployeeEdit, "Edit employee record", dto.NewEmployeeView(e))
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	fields, ok := h.bind(c)
	if !ok {
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		h.web.Fail(c, err)
		return
	}
	h.web.RedirectWithFlash(c, ListPath, MsgUpdated)
}

// DeleteList renders the records with a delete button each.
func (h *EmployeeHandler) DeleteList(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.web.Fail(c, err)
		return
	}
	h.web.Render(c, http.StatusOK, views.PageEmployeeDelete, "Delete employee records", dto.NewEmployeeViews(list))
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.web.Fail(c, err)
		return
	}
	h.web.RedirectWithFlash(c, ListPath, MsgDeleted)
}

func (h *EmployeeHandler) bind(c *gin.Context) (dom.EmployeeFields, bool) {
	var form dto.EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.web.Fail(c, fmt.Errorf("%w: %v", dom.ErrValidation, err))
		return dom.EmployeeFields{}, false
	}
	fields, err := form.Fields()
	if err != nil {
		h.web.Fail(c, err)
		return dom.EmployeeFields{}, false
	}
	return fields, true
}
