package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"academy-backend/models"
	"academy-backend/services"
)

type CourseHandler struct {
	courses *services.CourseService
}

func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// GetCourses возвращает все курсы; ?search= ищет подстроку в названии
// или описании, ?name= ищет курс по точному названию
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		course, err := h.courses.FindByName(name)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if course == nil {
			respondError(w, http.StatusNotFound, "Course not found")
			return
		}
		respondJSON(w, http.StatusOK, course)
		return
	}

	var (
		courses []*models.Course
		err     error
	)
	if search := r.URL.Query().Get("search"); search != "" {
		courses, err = h.courses.SearchCourses(search)
	} else {
		courses, err = h.courses.GetAllCourses()
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	course, err := h.courses.GetCourseByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var createReq struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createReq.Name == "" {
		respondError(w, http.StatusBadRequest, "Course name is required")
		return
	}
	if len(createReq.Description) > 300 {
		respondError(w, http.StatusBadRequest, "Description must be at most 300 characters")
		return
	}

	course := &models.Course{
		Name:        createReq.Name,
		Description: createReq.Description,
	}
	if err := h.courses.SaveCourse(course); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Course created successfully with ID: %d", course.ID)
	respondJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	course, err := h.courses.GetCourseByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var updateReq struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(updateReq.Description) > 300 {
		respondError(w, http.StatusBadRequest, "Description must be at most 300 characters")
		return
	}

	if updateReq.Name != "" {
		course.Name = updateReq.Name
	}
	if updateReq.Description != "" {
		course.Description = updateReq.Description
	}

	if err := h.courses.SaveCourse(course); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	if err := h.courses.DeleteCourse(id); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("🗑️ Course %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetEnrolledStudents возвращает студентов курса
func (h *CourseHandler) GetEnrolledStudents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	students, err := h.courses.GetEnrolledStudents(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, students)
}

// AssignTeacher назначает преподавателя на курс
func (h *CourseHandler) AssignTeacher(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}
	teacherID, err := pathID(r, "teacherId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	course, err := h.courses.AssignTeacherToCourse(courseID, teacherID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Teacher %d assigned to course %d", teacherID, courseID)
	respondJSON(w, http.StatusOK, course)
}

// AddStudent записывает студента на курс со стороны курса
func (h *CourseHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}
	studentID, err := pathID(r, "studentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	course, err := h.courses.AddStudentToCourse(courseID, studentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Student %d added to course %d", studentID, courseID)
	respondJSON(w, http.StatusOK, course)
}

// RemoveStudent отчисляет студента с курса со стороны курса
func (h *CourseHandler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}
	studentID, err := pathID(r, "studentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	course, err := h.courses.RemoveStudentFromCourse(courseID, studentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Student %d removed from course %d", studentID, courseID)
	respondJSON(w, http.StatusOK, course)
}
