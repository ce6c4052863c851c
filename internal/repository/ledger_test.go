package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

func TestListZones(t *testing.T) {
	l, mock := newMock(t)
	mock.ExpectQuery(q("FROM zones z")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price_cents", "color", "total", "available", "held", "sold"}).
			AddRow(uint64(1), "Platea baja", uint32(2500000), "#f5d742", 180, 170, 6, 4))

	zones, err := l.ListZones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "Platea baja", zones[0].Name)
	assert.Equal(t, 180, zones[0].TotalSeats)
	assert.Equal(t, 4, zones[0].SoldSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedVenue(t *testing.T) {
	l, mock := newMock(t)
	layout := []model.ZoneLayout{
		{Zone: model.Zone{Name: "Palco", PriceCents: 100, Color: "#fff"}, RowSizes: []uint32{2, 1}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM zones")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(q("INSERT INTO zones (name, price_cents, color)")).
		WithArgs("Palco", uint32(100), "#fff").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(q("INSERT INTO seats (zone_id, row_num, col_num, status) VALUES (?, ?, ?, 'AVAILABLE'),(?, ?, ?, 'AVAILABLE'),(?, ?, ?, 'AVAILABLE')")).
		WithArgs(uint64(5), uint32(1), uint32(1), uint64(5), uint32(1), uint32(2), uint64(5), uint32(2), uint32(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := l.SeedVenue(context.Background(), layout)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedVenue_AlreadySeeded(t *testing.T) {
	l, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT COUNT(*) FROM zones")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(9))
	mock.ExpectRollback()

	_, err := l.SeedVenue(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAlreadySeeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}
