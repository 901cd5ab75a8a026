package dbmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentora/internal/core/entity"
	"rentora/internal/core/id"
)

type mockCity struct {
	entity.BaseEntity
	Name      string `db:"name" json:"name"`
	CountryID id.ID  `db:"country_id" json:"countryId"`
	Ignored   string `db:"-"`
	Untagged  string
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[*mockCity]()

	assert.Equal(t, []string{
		"id", "is_deleted", "created_date", "modified_date", "deleted_date", "name", "country_id",
	}, cols)
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	c := &mockCity{
		BaseEntity: entity.BaseEntity{ID: id.New(), IsDeleted: true, DeletedDate: &now},
		Name:       "Springfield",
		CountryID:  id.New(),
		Ignored:    "x",
	}

	m := StructToMap(c)

	assert.Equal(t, c.ID, m["id"])
	assert.Equal(t, true, m["is_deleted"])
	assert.Equal(t, &now, m["deleted_date"])
	assert.Equal(t, "Springfield", m["name"])
	assert.Equal(t, c.CountryID, m["country_id"])
	assert.NotContains(t, m, "Ignored")
	assert.Len(t, m, 7)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap((*mockCity)(nil)))
}

func TestClone_IsIndependent(t *testing.T) {
	orig := &mockCity{Name: "Springfield"}
	cp := Clone(orig)

	cp.Name = "Shelbyville"
	assert.Equal(t, "Springfield", orig.Name)
	assert.NotSame(t, orig, cp)
}

type mockAddress struct {
	entity.BaseEntity
	ZipCode *string           `db:"zip_code"`
	Tags    []string          `db:"tags"`
	Extra   map[string]string `db:"extra"`
}

func TestClone_CopiesReferenceFields(t *testing.T) {
	zip := "12345"
	deleted := time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC)
	orig := &mockAddress{ZipCode: &zip, Tags: []string{"a"}, Extra: map[string]string{"k": "v"}}
	orig.DeletedDate = &deleted

	cp := Clone(orig)
	*cp.ZipCode = "ABC"
	*cp.DeletedDate = deleted.AddDate(1, 0, 0)
	cp.Tags[0] = "b"
	cp.Extra["k"] = "w"

	assert.Equal(t, "12345", *orig.ZipCode)
	assert.Equal(t, deleted, *orig.DeletedDate)
	assert.Equal(t, []string{"a"}, orig.Tags)
	assert.Equal(t, "v", orig.Extra["k"])

	zip = "XYZ"
	assert.Equal(t, "ABC", *cp.ZipCode)
}

func TestClone_KeepsNilReferences(t *testing.T) {
	cp := Clone(&mockAddress{})
	assert.Nil(t, cp.ZipCode)
	assert.Nil(t, cp.Tags)
	assert.Nil(t, cp.Extra)
	assert.Nil(t, cp.DeletedDate)
}
