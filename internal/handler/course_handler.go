package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/service"
)

// CourseHandler handles course endpoints.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListApproved godoc
// @Summary List approved courses
// @Description Approved courses ordered by enrollment, most popular first.
// @Tags courses
// @Produce json
// @Success 200 {array} model.Course
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListApproved(c echo.Context) error {
	courses, err := h.courseService.ListApproved(c.Request().Context())
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, courses)
}

// ListAll godoc
// @Summary List every course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Course
// @Failure 401 {object} errors.ErrorResponse
// @Router /allCourses [get]
func (h *CourseHandler) ListAll(c echo.Context) error {
	courses, err := h.courseService.ListAll(c.Request().Context())
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, courses)
}

// Get godoc
// @Summary Get course by id
// @Description Returns null when no course has the id.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ObjectID"
// @Success 200 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := objectID(c)
	if err != nil {
		return err
	}
	course, err := h.courseService.Get(c.Request().Context(), id)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, course)
}

// Create godoc
// @Summary Create a course
// @Description Returns the existing course unchanged when the name is taken.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body model.Course true "Course"
// @Success 200 {object} model.Course
// @Success 201 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /course [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var course model.Course
	if err := bindAndValidate(c, &course); err != nil {
		return err
	}
	var caller string
	if cl := claims(c); cl != nil {
		caller = cl.Email
	}
	out, created, err := h.courseService.Create(c.Request().Context(), &course, caller)
	if err != nil {
		return failure(err)
	}
	return writeResult(c, created, out)
}

// Review godoc
// @Summary Review a course
// @Description Sets status and/or feedback. Absent fields are left untouched.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ObjectID"
// @Param review body model.CourseReview true "Review"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /updateValue/{id} [put]
func (h *CourseHandler) Review(c echo.Context) error {
	id, err := objectID(c)
	if err != nil {
		return err
	}
	var review model.CourseReview
	if err := bindAndValidate(c, &review); err != nil {
		return err
	}
	res, err := h.courseService.Review(c.Request().Context(), id, review)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary Update course details
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ObjectID"
// @Param update body model.CourseUpdate true "Fields to change"
// @Success 200 {object} model.UpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /updateCourses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	id, err := objectID(c)
	if err != nil {
		return err
	}
	var update model.CourseUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return err
	}
	res, err := h.courseService.Update(c.Request().Context(), id, update)
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListByInstructor godoc
// @Summary List an instructor's courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param user query string false "Instructor email"
// @Success 200 {array} model.Course
// @Failure 401 {object} errors.ErrorResponse
// @Router /userCourses [get]
func (h *CourseHandler) ListByInstructor(c echo.Context) error {
	courses, err := h.courseService.ListByInstructor(c.Request().Context(), c.QueryParam("user"))
	if err != nil {
		return failure(err)
	}
	return c.JSON(http.StatusOK, courses)
}
