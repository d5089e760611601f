package kyc

import (
	"testing"

	"github.com/guideport/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() SubmissionInput {
	back := "https://cdn.example.com/back.jpg"
	return SubmissionInput{
		DocumentType:   models.KYCDocumentDriversLicense,
		DocumentNumber: "123456789012",
		LegalName:      "Hanako Yamada",
		Nationality:    "JP",
		FrontImageURL:  "https://cdn.example.com/front.jpg",
		BackImageURL:   &back,
	}
}

func TestValidateSubmissionOK(t *testing.T) {
	assert.Nil(t, ValidateSubmission(validInput()))
}

func TestValidateSubmissionMissingFields(t *testing.T) {
	errs := ValidateSubmission(SubmissionInput{})
	require.NotNil(t, errs)

	assert.Contains(t, errs, "document_type")
	assert.Contains(t, errs, "document_number")
	assert.Contains(t, errs, "legal_name")
	assert.Contains(t, errs, "nationality")
	assert.Contains(t, errs, "front_image_url")
}

func TestValidateSubmissionUnknownDocumentType(t *testing.T) {
	input := validInput()
	input.DocumentType = "library_card"

	errs := ValidateSubmission(input)
	require.NotNil(t, errs)
	assert.Equal(t, "unknown document type", errs["document_type"])
}

func TestValidateSubmissionNationality(t *testing.T) {
	input := validInput()
	input.Nationality = "JPN"

	errs := ValidateSubmission(input)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "nationality")
}

func TestValidateSubmissionPassportWithoutBackImage(t *testing.T) {
	input := validInput()
	input.DocumentType = models.KYCDocumentPassport
	input.BackImageURL = nil

	assert.Nil(t, ValidateSubmission(input))
}

func TestValidateSubmissionBackImageOptional(t *testing.T) {
	input := validInput()
	input.BackImageURL = nil

	assert.Nil(t, ValidateSubmission(input))
}

func TestFieldErrorsError(t *testing.T) {
	errs := FieldErrors{"legal_name": "required"}
	assert.Equal(t, "legal_name: required", errs.Error())
}

func TestTransitionSubmit(t *testing.T) {
	assert.NoError(t, Transition(models.KYCStatusPending, models.KYCStatusSubmitted))
	assert.NoError(t, Transition(models.KYCStatusRejected, models.KYCStatusSubmitted))
}

func TestTransitionApprovedIsTerminal(t *testing.T) {
	for _, to := range []models.KYCStatus{
		models.KYCStatusSubmitted,
		models.KYCStatusApproved,
		models.KYCStatusRejected,
	} {
		err := Transition(models.KYCStatusApproved, to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "approved -> %s", to)
	}
}

func TestTransitionResubmissionWhileUnderReview(t *testing.T) {
	err := Transition(models.KYCStatusSubmitted, models.KYCStatusSubmitted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionReviewRequiresSubmission(t *testing.T) {
	for _, from := range []models.KYCStatus{
		models.KYCStatusPending,
		models.KYCStatusRejected,
	} {
		assert.ErrorIs(t, Transition(from, models.KYCStatusApproved), ErrInvalidTransition, "from %s", from)
		assert.ErrorIs(t, Transition(from, models.KYCStatusRejected), ErrInvalidTransition, "from %s", from)
	}
}

func TestTransitionReviewFromSubmitted(t *testing.T) {
	assert.NoError(t, Transition(models.KYCStatusSubmitted, models.KYCStatusApproved))
	assert.NoError(t, Transition(models.KYCStatusSubmitted, models.KYCStatusRejected))
}

func TestTransitionPendingIsNotReachable(t *testing.T) {
	err := Transition(models.KYCStatusSubmitted, models.KYCStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
