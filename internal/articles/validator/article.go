package validator

import (
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ArticleValidator struct {
	validate *validator.Validate
}

func NewArticleValidator(log *logger.Logger) *ArticleValidator {
	return &ArticleValidator{
		validate: validation.New(log),
	}
}

func (v *ArticleValidator) ValidateInput(in *model.ArticleInput) error {
	return validation.Struct(v.validate, in)
}

// Validate also serves as the read-back check for stored articles.
func (v *ArticleValidator) Validate(a *model.Article) error {
	return validation.Struct(v.validate, a)
}
