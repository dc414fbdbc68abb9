package dto

// CatalogRequest body de creación/actualización de cualquier catálogo.
// parent_id: categoría principal (sub categorías) o sub categoría (tipos de ítem).
type CatalogRequest struct {
	Name        *string `json:"name"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CatalogResponse entrada de catálogo.
type CatalogResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	ParentID    *int64  `json:"parent_id,omitempty"`
	ParentName  *string `json:"parent_name,omitempty"`
	Description *string `json:"description,omitempty"`
}
