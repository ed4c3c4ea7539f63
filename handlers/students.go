package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"academy-backend/models"
	"academy-backend/services"
)

type StudentHandler struct {
	students *services.StudentService
}

func NewStudentHandler(students *services.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

func (h *StudentHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	var (
		students []*models.Student
		err      error
	)
	if lastName := r.URL.Query().Get("lastName"); lastName != "" {
		students, err = h.students.FindByLastName(lastName)
	} else {
		students, err = h.students.GetAllStudents()
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, students)
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	student, err := h.students.GetStudentByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
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

	// Email студентов уникален
	existing, err := h.students.FindByEmail(createReq.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "Student with this email already exists")
		return
	}

	student := &models.Student{
		FirstName: createReq.FirstName,
		LastName:  createReq.LastName,
		Email:     createReq.Email,
	}
	if err := h.students.SaveStudent(student); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Student created successfully with ID: %d", student.ID)
	respondJSON(w, http.StatusCreated, student)
}

func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	student, err := h.students.GetStudentByID(id)
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
		student.FirstName = updateReq.FirstName
	}
	if updateReq.LastName != "" {
		student.LastName = updateReq.LastName
	}
	if updateReq.Email != "" {
		student.Email = updateReq.Email
	}

	if err := h.students.SaveStudent(student); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	if err := h.students.DeleteStudent(id); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("🗑️ Student %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetStudentCourses возвращает курсы, на которые записан студент
func (h *StudentHandler) GetStudentCourses(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	courses, err := h.students.GetStudentCourses(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, courses)
}

// Enroll записывает студента на курс
func (h *StudentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}
	courseID, err := pathID(r, "courseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	student, err := h.students.EnrollStudentInCourse(studentID, courseID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Student %d enrolled in course %d", studentID, courseID)
	respondJSON(w, http.StatusOK, student)
}

// Withdraw отчисляет студента с курса
func (h *StudentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}
	courseID, err := pathID(r, "courseId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	student, err := h.students.WithdrawStudentFromCourse(studentID, courseID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("✅ Student %d withdrawn from course %d", studentID, courseID)
	respondJSON(w, http.StatusOK, student)
}
