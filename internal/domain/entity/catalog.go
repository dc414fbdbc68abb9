package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CatalogKind identifica un catálogo administrable por nombre.
type CatalogKind string

// Catálogos disponibles.
const (
	CatalogDepartment   CatalogKind = "department"
	CatalogRank         CatalogKind = "rank"
	CatalogFloor        CatalogKind = "floor"
	CatalogMainCategory CatalogKind = "main_category"
	CatalogSubCategory  CatalogKind = "sub_category"
	CatalogItemType     CatalogKind = "item_type"
)

// HasParent indica si el nombre es único solo dentro de su padre
// (sub categoría dentro de categoría principal, tipo de ítem dentro de sub categoría).
func (k CatalogKind) HasParent() bool {
	return k == CatalogSubCategory || k == CatalogItemType
}

// ParentKind catálogo padre de k; vacío si k no tiene padre.
func (k CatalogKind) ParentKind() CatalogKind {
	switch k {
	case CatalogSubCategory:
		return CatalogMainCategory
	case CatalogItemType:
		return CatalogSubCategory
	}
	return ""
}

// Valid indica si k es un catálogo conocido.
func (k CatalogKind) Valid() bool {
	switch k {
	case CatalogDepartment, CatalogRank, CatalogFloor, CatalogMainCategory, CatalogSubCategory, CatalogItemType:
		return true
	}
	return false
}

// HasDescription indica si el catálogo guarda descripción.
func (k CatalogKind) HasDescription() bool {
	return k == CatalogMainCategory || k == CatalogSubCategory
}

// CatalogEntry fila genérica de un catálogo (departamento, rango, piso, categoría, tipo de ítem).
type CatalogEntry struct {
	Kind        CatalogKind
	ID          int64
	Name        string
	Key         string // nombre plegado (sin distinción de mayúsculas); único por catálogo y padre
	ParentID    *int64
	ParentName  *string
	Description *string
}

// NormalizeName recorta, colapsa espacios y normaliza a NFC.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// NameKey forma plegada del nombre usada para la unicidad sin distinguir mayúsculas.
func NameKey(name string) string {
	return cases.Fold().String(NormalizeName(name))
}
