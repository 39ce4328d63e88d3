package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BSubjects/forms"
	"github.com/CPU-commits/Intranet_BSubjects/res"
	"github.com/CPU-commits/Intranet_BSubjects/services"
	"github.com/gin-gonic/gin"
)

type SubjectsController struct {
	subjectsService *services.SubjectsService
}

// Feed
// NewSubject godoc
// @Summary     New subject
// @Description Create a subject
// @Tags        subjects
// @Tags        roles.directive
// @Tags        roles.director
// @Accept      json
// @Produce     json
// @Param       subject body     forms.SubjectForm true "Subject"
// @Success     201     {object} res.Response{body=models.Subject}
// @Failure     400     {object} res.Response{} "Bad body"
// @Failure     401     {object} res.Response{} "Unauthorized"
// @Failure     401     {object} res.Response{} "Unauthorized role"
// @Failure     503     {object} res.Response{} "Service Unavailable - DB Service Unavailable"
// @Router      /new_subject [post]
func (s *SubjectsController) NewSubject(c *gin.Context) {
	var subjectData forms.SubjectForm
	// Binding
	if err := c.ShouldBindJSON(&subjectData); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	// Insert
	subject, err := s.subjectsService.NewSubject(c.Request.Context(), &subjectData)
	if err != nil {
		c.AbortWithStatusJSON(err.StatusCode, &res.Response{
			Success: false,
			Message: err.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["subject"] = subject
	c.JSON(http.StatusCreated, &res.Response{
		Success: true,
		Data:    response,
	})
}

// UpdateSubject godoc
// @Summary     Update subject
// @Description Overwrite an existing subject
// @Tags        subjects
// @Tags        roles.directive
// @Tags        roles.director
// @Accept      json
// @Produce     json
// @Param       idSubject path     string            true "Subject ID"
// @Param       subject   body     forms.SubjectForm true "Subject"
// @Success     200       {object} res.Response{body=models.Subject}
// @Failure     400       {object} res.Response{} "Bad body"
// @Failure     404       {object} res.Response{} "Not found"
// @Failure     503       {object} res.Response{} "Service Unavailable - DB Service Unavailable"
// @Router      /update_subject/{idSubject} [put]
func (s *SubjectsController) UpdateSubject(c *gin.Context) {
	var subjectData forms.SubjectForm
	idSubject := c.Param("idSubject")
	// Binding
	if err := c.ShouldBindJSON(&subjectData); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	// Update
	subject, err := s.subjectsService.UpdateSubject(c.Request.Context(), idSubject, &subjectData)
	if err != nil {
		c.AbortWithStatusJSON(err.StatusCode, &res.Response{
			Success: false,
			Message: err.Err.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["subject"] = subject
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}

// DeleteSubject godoc
// @Summary     Delete subject
// @Description Delete a subject, deleting a missing subject succeeds
// @Tags        subjects
// @Tags        roles.directive
// @Tags        roles.director
// @Produce     json
// @Param       idSubject path     string true "Subject ID"
// @Success     200       {object} res.Response{}
// @Failure     503       {object} res.Response{} "Service Unavailable - DB Service Unavailable"
// @Router      /delete_subject/{idSubject} [delete]
func (s *SubjectsController) DeleteSubject(c *gin.Context) {
	idSubject := c.Param("idSubject")

	if err := s.subjectsService.DeleteSubject(c.Request.Context(), idSubject); err != nil {
		c.AbortWithStatusJSON(err.StatusCode, &res.Response{
			Success: false,
			Message: err.Err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
	})
}

func NewSubjectsController(subjectsService *services.SubjectsService) *SubjectsController {
	return &SubjectsController{
		subjectsService: subjectsService,
	}
}
