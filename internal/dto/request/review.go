package request

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/utils"
)

// ReviewRequest holds the raw review form; Rating stays a string until Validate
type ReviewRequest struct {
	Comment string `form:"comment" validate:"required"`
	Rating  string `form:"rating" validate:"-"`
}

// ValidReview is a review form that passed validation
type ValidReview struct {
	Comment string
	Rating  int
}

var trailingZeros = regexp.MustCompile(`\.0*$`)

func NewReviewRequest(form url.Values) ReviewRequest {
	return ReviewRequest{
		Comment: strings.TrimSpace(form.Get("comment")),
		Rating:  strings.TrimSpace(form.Get("rating")),
	}
}

func (r ReviewRequest) Validate() (ValidReview, map[string]string) {
	errs := utils.ValidateStruct(r)
	if errs == nil {
		errs = make(map[string]string)
	}

	rating, msg := parseRating(r.Rating)
	if msg != "" {
		errs["rating"] = msg
	}

	if len(errs) > 0 {
		return ValidReview{}, errs
	}
	return ValidReview{Comment: r.Comment, Rating: rating}, nil
}

func parseRating(raw string) (int, string) {
	if raw == "" {
		return 0, "This field is required."
	}

	rating, err := strconv.Atoi(trailingZeros.ReplaceAllString(raw, ""))
	if err != nil {
		return 0, "Enter a whole number."
	}

	switch {
	case rating < entity.MinRating:
		return 0, fmt.Sprintf("Ensure this value is greater than or equal to %d.", entity.MinRating)
	case rating > entity.MaxRating:
		return 0, fmt.Sprintf("Ensure this value is less than or equal to %d.", entity.MaxRating)
	}
	return rating, ""
}
