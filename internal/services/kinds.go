package services

import "resep/internal/models"

const maxAttributeNameLength = 255

// TagKind describes recipe tags.
var TagKind = ResourceKind[models.Tag]{
	Name: "tag",
	New: func(ownerID, name string) *models.Tag {
		return &models.Tag{OwnerID: ownerID, Name: name}
	},
	MaxNameLength: maxAttributeNameLength,
}

// IngredientKind describes recipe ingredients.
var IngredientKind = ResourceKind[models.Ingredient]{
	Name: "ingredient",
	New: func(ownerID, name string) *models.Ingredient {
		return &models.Ingredient{OwnerID: ownerID, Name: name}
	},
	MaxNameLength: maxAttributeNameLength,
}
