package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/cnis-flow/internal/model"
)

func TestResolveGender(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name     string
		flag     string
		fallback model.Gender
		want     model.Gender
		wantErr  bool
	}{
		{name: "flag wins", flag: "feminino", fallback: model.GenderMale, want: model.GenderFemale},
		{name: "fallback", fallback: model.GenderFemale, want: model.GenderFemale},
		{name: "configured default", want: model.GenderMale},
		{name: "invalid flag", flag: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveGender(tt.flag, tt.fallback)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewImport(t *testing.T) {
	extract := &model.Extract{Bonds: []model.Bond{model.NewBond(1)}}

	a := newImport("a.pdf", model.GenderFemale, extract)
	b := newImport("a.pdf", model.GenderFemale, extract)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
	assert.Equal(t, "a.pdf", a.SourceFile)
	assert.Equal(t, model.GenderFemale, a.Gender)
	assert.Equal(t, model.GenderFemale, a.Extract.Profile.Gender)
	assert.False(t, a.ImportedAt.IsZero())
}
