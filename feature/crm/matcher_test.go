package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneMatcher(t *testing.T) {
	db := newTestDB(t)
	seedCustomers(t, db,
		Customer{FirstName: "Ana", Phone: "+51 987-654-321"},
		Customer{FirstName: "Ana duplicate", Phone: "987654321"},
		Customer{FirstName: "Luis", Phone: "(01) 555.0199"},
		Customer{FirstName: "NoPhone", Phone: ""},
	)
	m := NewPhoneMatcher(db, 9)

	tests := []struct {
		name  string
		phone string
		want  uint
	}{
		{name: "FormattedStoredPhone", phone: "51987654321", want: 1},
		{name: "ParenthesesAndDots", phone: "+1 015550199", want: 3},
		{name: "NoMatch", phone: "51900000000"},
		{name: "EmptySender", phone: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := m.MatchCustomer(context.Background(), tt.phone)
			require.NoError(t, err)
			if tt.want == 0 {
				assert.Nil(t, id)
				return
			}
			require.NotNil(t, id)
			assert.Equal(t, tt.want, *id)
		})
	}
}

func TestPhoneMatcher_ShortNumbers(t *testing.T) {
	db := newTestDB(t)
	seedCustomers(t, db, Customer{FirstName: "Short", Phone: "5550"})
	m := NewPhoneMatcher(db, 9)

	id, err := m.MatchCustomer(context.Background(), "5550")
	require.NoError(t, err)
	require.NotNil(t, id)

	id, err = m.MatchCustomer(context.Background(), "995550")
	require.NoError(t, err)
	assert.Nil(t, id, "a longer sender number does not match a shorter stored one")
}
