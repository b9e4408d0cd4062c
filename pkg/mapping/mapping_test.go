package mapping

import (
	"testing"
	"time"

	"github.com/chris/contact-unlock/pkg/api"
	"github.com/chris/contact-unlock/pkg/disclosure"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestToApiProperty(t *testing.T) {
	property := &models.Property{
		Id:         "prop-1",
		Name:       "Sea View",
		Price:      "25000",
		Location:   "Goa",
		Bedrooms:   2,
		OwnerName:  "Asha",
		OwnerPhone: "+91 98765 43210",
		DatePosted: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	out := ToApiProperty(property, disclosure.LockedContact(property))

	assert.Equal(t, "prop-1", out.Id)
	assert.Equal(t, "+XX XXXXX XXXXX", out.Contact.Phone)
	assert.True(t, out.Contact.Locked)
	assert.Nil(t, out.Image)
	assert.Nil(t, out.Details)
	assert.Equal(t, property.DatePosted, out.DatePosted)
}

func TestToDomainNewProperty(t *testing.T) {
	beds := 3
	img := "https://img.example/1.jpg"
	out := ToDomainNewProperty(&api.NewProperty{
		Name:       "Hill House",
		Price:      "40000",
		Location:   "Pune",
		OwnerName:  "Ravi",
		OwnerPhone: "020 1234 5678",
		Bedrooms:   &beds,
		Image:      &img,
	})

	assert.Empty(t, out.Id)
	assert.Equal(t, 3, out.Bedrooms)
	assert.Equal(t, 0, out.Bathrooms)
	assert.Equal(t, img, out.Image)
	assert.Equal(t, "020 1234 5678", out.OwnerPhone)
}

func TestToApiPaymentAttempt(t *testing.T) {
	reason := "abandoned"
	attempt := models.PaymentAttempt{
		Id:               "a-1",
		UserId:           "user-1",
		PropertyId:       "prop-1",
		AmountMinorUnits: 9900,
		Currency:         "inr",
		Status:           models.FAILED,
		FailureReason:    &reason,
	}

	out := ToApiPaymentAttempts([]models.PaymentAttempt{attempt})

	assert.Len(t, out, 1)
	assert.Equal(t, api.PaymentStatusFailed, out[0].Status)
	assert.Equal(t, &reason, out[0].FailureReason)
	assert.Equal(t, int64(9900), out[0].AmountMinorUnits)
}
