package appointmentRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestListOrderMatchesInProcessStore(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: 1}}, listOrder)
	for _, e := range listOrder {
		assert.NotEqual(t, "time", e.Key, "labels like 01:00 PM sort before 09:00 AM as strings")
	}
}
