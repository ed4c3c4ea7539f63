package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"academy-backend/auth"
	"academy-backend/config"
	"academy-backend/database"
	"academy-backend/handlers"
	"academy-backend/middleware"
	"academy-backend/repository"
	"academy-backend/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("🚀 Starting Academy Backend Server...")

	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	// Загрузка конфигурации
	cfg := config.Load()
	log.Printf("📋 Configuration loaded: Server Port %s", cfg.ServerPort)

	// Инициализация подключения к базе данных
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatal("❌ Error initializing database:", err)
	}

	// Получаем низкоуровневое соединение для закрытия
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("❌ Error getting SQL DB:", err)
	}
	defer sqlDB.Close()

	// Миграция схемы
	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Error migrating database:", err)
	}

	// Отдельное соединение для агрегатных запросов дашборда
	statsReader, err := database.NewStatsReader(cfg)
	if err != nil {
		log.Fatal("❌ Error initializing stats reader:", err)
	}
	defer statsReader.Close()

	// Схема хранения паролей
	passwordScheme, err := auth.NewPasswordScheme(cfg.PasswordScheme)
	if err != nil {
		log.Fatal("❌ Error initializing password scheme:", err)
	}

	// Хранилище и сервисы
	store := repository.NewStore(db)
	userService := services.NewUserService(store, passwordScheme)
	studentService := services.NewStudentService(store)
	teacherService := services.NewTeacherService(store)
	courseService := services.NewCourseService(store)

	// Администратор по умолчанию
	if err := userService.EnsureDefaultAdmin(); err != nil {
		log.Fatal("❌ Error ensuring default admin:", err)
	}

	// Сессии и JWT
	sessionStore := auth.NewSessionStore(cfg.SessionSecret)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	// Middleware и обработчики
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionStore)
	authHandler := handlers.NewAuthHandler(userService, jwtService, sessionStore)
	studentHandler := handlers.NewStudentHandler(studentService)
	teacherHandler := handlers.NewTeacherHandler(teacherService)
	courseHandler := handlers.NewCourseHandler(courseService)
	statsHandler := handlers.NewStatsHandler(statsReader)

	// Создание роутера
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)

	setupRoutes(r, authHandler, studentHandler, teacherHandler, courseHandler, statsHandler, authMiddleware)

	serverAddr := ":" + cfg.ServerPort
	log.Printf("✅ Server successfully started on %s", serverAddr)
	log.Printf("🌐 Available at: http://localhost%s", serverAddr)
	log.Printf("🔐 JWT Expiry: %d hours", cfg.JWTExpiry)

	log.Fatal(http.ListenAndServe(serverAddr, r))
}

func setupRoutes(r *mux.Router,
	authHandler *handlers.AuthHandler,
	studentHandler *handlers.StudentHandler,
	teacherHandler *handlers.TeacherHandler,
	courseHandler *handlers.CourseHandler,
	statsHandler *handlers.StatsHandler,
	authMiddleware *middleware.AuthMiddleware) {

	// Публичные маршруты API (без аутентификации)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")

	// Защищенные маршруты API
	protectedAPI := r.PathPrefix("/api").Subrouter()
	protectedAPI.Use(authMiddleware.RequireAuth)

	// Аутентификация
	protectedAPI.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	protectedAPI.HandleFunc("/auth/me", authHandler.CurrentUser).Methods("GET")

	// Студенты
	protectedAPI.HandleFunc("/students", studentHandler.GetStudents).Methods("GET")
	protectedAPI.HandleFunc("/students", studentHandler.CreateStudent).Methods("POST")
	protectedAPI.HandleFunc("/students/{id}", studentHandler.GetStudent).Methods("GET")
	protectedAPI.HandleFunc("/students/{id}", studentHandler.UpdateStudent).Methods("PUT", "PATCH")
	protectedAPI.HandleFunc("/students/{id}", studentHandler.DeleteStudent).Methods("DELETE")
	protectedAPI.HandleFunc("/students/{id}/courses", studentHandler.GetStudentCourses).Methods("GET")
	protectedAPI.HandleFunc("/students/{id}/courses/{courseId}", studentHandler.Enroll).Methods("POST")
	protectedAPI.HandleFunc("/students/{id}/courses/{courseId}", studentHandler.Withdraw).Methods("DELETE")

	// Преподаватели
	protectedAPI.HandleFunc("/teachers", teacherHandler.GetTeachers).Methods("GET")
	protectedAPI.HandleFunc("/teachers", teacherHandler.CreateTeacher).Methods("POST")
	protectedAPI.HandleFunc("/teachers/{id}", teacherHandler.GetTeacher).Methods("GET")
	protectedAPI.HandleFunc("/teachers/{id}", teacherHandler.UpdateTeacher).Methods("PUT", "PATCH")
	protectedAPI.HandleFunc("/teachers/{id}", teacherHandler.DeleteTeacher).Methods("DELETE")
	protectedAPI.HandleFunc("/teachers/{id}/courses", teacherHandler.GetTeacherCourses).Methods("GET")
	protectedAPI.HandleFunc("/teachers/{id}/courses/count", teacherHandler.CountTeacherCourses).Methods("GET")
	protectedAPI.HandleFunc("/teachers/{id}/courses/{courseId}", teacherHandler.AssignCourse).Methods("PUT")
	protectedAPI.HandleFunc("/teachers/{id}/courses/{courseId}", teacherHandler.RemoveCourse).Methods("DELETE")

	// Курсы
	protectedAPI.HandleFunc("/courses", courseHandler.GetCourses).Methods("GET")
	protectedAPI.HandleFunc("/courses", courseHandler.CreateCourse).Methods("POST")
	protectedAPI.HandleFunc("/courses/{id}", courseHandler.GetCourse).Methods("GET")
	protectedAPI.HandleFunc("/courses/{id}", courseHandler.UpdateCourse).Methods("PUT", "PATCH")
	protectedAPI.HandleFunc("/courses/{id}", courseHandler.DeleteCourse).Methods("DELETE")
	protectedAPI.HandleFunc("/courses/{id}/students", courseHandler.GetEnrolledStudents).Methods("GET")
	protectedAPI.HandleFunc("/courses/{id}/students/{studentId}", courseHandler.AddStudent).Methods("POST")
	protectedAPI.HandleFunc("/courses/{id}/students/{studentId}", courseHandler.RemoveStudent).Methods("DELETE")
	protectedAPI.HandleFunc("/courses/{id}/teacher/{teacherId}", courseHandler.AssignTeacher).Methods("PUT")

	// Дашборд
	protectedAPI.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Публичные маршруты (без API префикса)
	r.HandleFunc("/", rootHandler).Methods("GET")
	r.HandleFunc("/health", healthHandler).Methods("GET")

	// OPTIONS handlers для всех маршрутов
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept, Origin")
		w.WriteHeader(http.StatusOK)
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `
<!DOCTYPE html>
<html>
<head>
    <title>Academy Backend API</title>
</head>
<body>
    <h1>🎓 Academy Backend API</h1>
    <p><strong>ORM:</strong> GORM | <strong>Database:</strong> PostgreSQL | <strong>Auth:</strong> Sessions + JWT</p>
    <p><strong>Public Endpoints:</strong></p>
    <ul>
        <li><code>POST /api/auth/login</code> - Login</li>
        <li><code>POST /api/auth/register</code> - Register</li>
    </ul>
    <p><strong>Protected Endpoints:</strong> /api/students, /api/teachers, /api/courses, /api/stats</p>
    <p>Default admin: <code>admin</code> / <code>admin123</code></p>
</body>
</html>`
	w.Write([]byte(html))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	response := map[string]interface{}{
		"status":    "ok",
		"service":   "academy-backend",
		"orm":       "GORM",
		"auth":      "sessions+jwt",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	json.NewEncoder(w).Encode(response)
}
