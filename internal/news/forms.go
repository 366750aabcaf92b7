package news

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(articleCategoryRule, ArticleInput{})
	return v
}

// articleCategoryRule limits new articles to ArticleCategories. An update
// (non-zero ID) may keep whatever category the article already has.
func articleCategoryRule(sl validator.StructLevel) {
	in := sl.Current().Interface().(ArticleInput)
	if in.ID != 0 || in.Category == "" || slices.Contains(ArticleCategories, in.Category) {
		return
	}
	sl.ReportError(in.Category, "category", "Category", "oneof", strings.Join(ArticleCategories, " "))
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// ResetRequest backs the forgot-password form. It is never sent anywhere.
type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ArticleInput is the admin article form and the body of create/update calls.
// ID is only set for updates.
type ArticleInput struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Category    string `json:"category" validate:"required"`
	Tags        string `json:"tags"`
	Source      string `json:"source"`
	Author      string `json:"author"`
	ImageURL    string `json:"image_url"`
	URL         string `json:"url,omitempty"`
}

// NewArticleInput returns the blank admin form.
func NewArticleInput(author string) ArticleInput {
	if author == "" {
		author = "Admin"
	}
	return ArticleInput{
		Category: DefaultArticleCategory,
		Source:   "Admin",
		Author:   author,
	}
}

// InputFromArticle fills the admin form from an existing article.
func InputFromArticle(a Article) ArticleInput {
	return ArticleInput{
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Category:    a.Category,
		Tags:        a.Tags.String(),
		Source:      a.Source,
		Author:      a.Author,
		ImageURL:    a.ImageURL,
		URL:         a.URL,
	}
}

// ValidationError lists every field that failed its constraints.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// Validate checks a form against its struct tags.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
