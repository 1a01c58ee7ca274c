package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-updater/internal/analyze"
	"field-updater/internal/naming"
	"field-updater/internal/selector"
)

func TestPlanFields(t *testing.T) {
	fields, err := PlanFields(accountRecord(), selector.Options{})
	require.NoError(t, err)

	got := make([]naming.CanonicalName, len(fields))
	for i, f := range fields {
		got[i] = f.CanonicalName
	}

	assert.Equal(t, []naming.CanonicalName{
		{LookupKey: "id", TypeRef: "Id"},
		{LookupKey: "user_name", TypeRef: "UserName"},
		{LookupKey: "email", TypeRef: "Email"},
		{LookupKey: "created_at", TypeRef: "CreatedAt"},
		{LookupKey: "tier", TypeRef: "Tier"},
		{LookupKey: "note", TypeRef: "Note"},
	}, got)

	assert.Equal(t, "note", fields[5].Name)
	assert.Equal(t, 7, fields[5].Index)
}

func TestPlanFields_NoCanonicalName(t *testing.T) {
	rec := &analyze.Record{
		ID:    analyze.TypeID{Name: "Odd"},
		Shape: analyze.ShapeStruct,
		Members: []analyze.Member{
			{Name: "__", Type: "int"},
		},
	}

	_, err := PlanFields(rec, selector.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no canonical name")
}
