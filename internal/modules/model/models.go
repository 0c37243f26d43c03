package model

// All lists every table in foreign-key order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Pod{},
		&Project{},
		&Tag{},
		&Task{},
		&TaskTag{},
		&TaskAssignment{},
		&WorkLog{},
		&Notification{},
	}
}
