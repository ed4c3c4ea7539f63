package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"academy-backend/middleware"
	"academy-backend/models"
	"academy-backend/services"
)

type TeacherHandler struct {
	teachers *services.TeacherService
}

func NewTeacherHandler(teachers *services.TeacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// requireAdmin — операции над преподавателями доступны только админу
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return false
	}
	if principal.Role != models.RoleAdmin {
		log.Printf("❌ User %s (role: %s) tried %s %s without permission",
			principal.Username, principal.Role, r.Method, r.URL.Path)
		respondError(w, http.StatusForbidden, "Insufficient permissions")
		return false
	}
	return true
}

func (h *TeacherHandler) GetTeachers(w http.ResponseWriter, r *http.Request) {
	var (
		teachers []*models.Teacher
		err      error
	)
	if name := r.URL.Query().Get("name"); name != "" {
		teachers, err = h.teachers.FindByName(name)
	} else {
		teachers, err = h.teachers.GetAllTeachers()
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) GetTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	teacher, err := h.teachers.GetTeacherByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teacher)
}

func (h *TeacherHandler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var createReq struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if createReq.FirstName == "" || createReq.LastName == "" || createReq.Email == "" {
		respondError(w, http.StatusBadRequest, "First name, last name and email are required")
		return
	}

	existing, err := h.teachers.FindByEmail(createReq.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "Teacher with this email already exists")
		return
	}

	teacher := &models.Teacher{
		FirstName: createReq.FirstName,
		LastName:  createReq.LastName,
		Email:     createReq.Email,
	}
	if err := h.teachers.SaveTeacher(teacher); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Teacher created successfully with ID: %d", teacher.ID)
	respondJSON(w, http.StatusCreated, teacher)
}

func (h *TeacherHandler) UpdateTeacher(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	teacher, err := h.teachers.GetTeacherByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var updateReq struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if updateReq.FirstName != "" {
		teacher.FirstName = updateReq.FirstName
	}
	if updateReq.LastName != "" {
		teacher.LastName = updateReq.LastName
	}
	if updateReq.Email != "" {
		teacher.Email = updateReq.Email
	}

	if err := h.teachers.SaveTeacher(teacher); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teacher)
}

// DeleteTeacher удаляет преподавателя; его курсы открепляются, но остаются
func (h *TeacherHandler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	if err := h.teachers.DeleteTeacher(id); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("🗑️ Teacher %d deleted, courses detached", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeacherHandler) GetTeacherCourses(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	courses, err := h.teachers.GetTeacherCourses(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, courses)
}

func (h *TeacherHandler) CountTeacherCourses(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	count, err := h.teachers.CountCoursesByTeacher(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// AssignCourse прикрепляет курс к преподавателю
func (h *TeacherHandler) AssignCourse(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	teacherID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}
	courseID, err := pathID(r, "courseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	teacher, err := h.teachers.AssignCourseToTeacher(teacherID, courseID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Course %d assigned to teacher %d", courseID, teacherID)
	respondJSON(w, http.StatusOK, teacher)
}

// RemoveCourse открепляет курс от преподавателя
func (h *TeacherHandler) RemoveCourse(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	teacherID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid teacher ID")
		return
	}
	courseID, err := pathID(r, "courseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	teacher, err := h.teachers.RemoveCourseFromTeacher(teacherID, courseID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Course %d removed from teacher %d", courseID, teacherID)
	respondJSON(w, http.StatusOK, teacher)
}
