package database

import (
	"log"

	"academy-backend/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	log.Println("🔄 Starting database migration...")

	// Сначала независимые таблицы, потом зависимые
	tables := []interface{}{
		&models.Teacher{},
		&models.Course{},
		&models.Student{},
		&models.User{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			log.Printf("❌ Error migrating table %T: %v", table, err)
			return err
		}
		log.Printf("✅ Created/Updated table for: %T", table)
	}

	createIndexes(db)

	log.Println("✅ Database migration completed successfully!")
	return nil
}

func createIndexes(db *gorm.DB) {
	log.Println("📊 Creating indexes...")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_students_last_name ON students(last_name)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_students_email ON students(email)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_teachers_last_name ON teachers(last_name)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teachers_email ON teachers(email)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_courses_name ON courses(name)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_courses_teacher_id ON courses(teacher_id)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)")

	log.Println("✅ Indexes created successfully!")
}
