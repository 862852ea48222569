package models

// All lists every table in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&MenuItem{},
		&Cart{},
		&Order{},
		&OrderItem{},
		&ContactMessage{},
	}
}
