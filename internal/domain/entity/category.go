package entity

import "time"

// Category taxonomía de artículos de inventario.
// No se puede borrar mientras tenga artículos asociados (RESTRICT en la FK).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
