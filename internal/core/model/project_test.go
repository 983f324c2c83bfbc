package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalColumn(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"nome", ColumnName},
		{" NOME ", ColumnName},
		{"Data de  fim do projeto", ColumnActualEndDate},
		{"previsão de término", ColumnPlannedEndDate},
		{"Observações", "Observações"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalColumn(tt.header))
		})
	}
}

func TestIsDateColumn(t *testing.T) {
	for _, c := range DateColumns {
		assert.True(t, IsDateColumn(c), c)
	}
	assert.True(t, IsDateColumn("data de recebimento (sei)"))
	assert.False(t, IsDateColumn(ColumnName))
	assert.False(t, IsDateColumn(ColumnMVPProgress))
	assert.False(t, IsDateColumn("Observações"))
}

func TestProjectRecordDate(t *testing.T) {
	received := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	finished := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	r := &ProjectRecord{ReceivedDate: &received, ActualEndDate: &finished}

	assert.Equal(t, &received, r.Date(ColumnReceivedDate))
	assert.Equal(t, &finished, r.Date("DATA DE FIM DO PROJETO"))
	assert.Nil(t, r.Date(ColumnStartDate))
	assert.Nil(t, r.Date("Observações"))
}
