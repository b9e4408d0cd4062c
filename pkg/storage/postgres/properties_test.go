package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chris/contact-unlock/pkg/models"
	"github.com/chris/contact-unlock/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyRowColumns = []string{"id", "name", "price", "location", "image", "bedrooms", "bathrooms",
	"area", "type", "details", "owner_name", "owner_phone", "date_posted", "created_at"}

func TestProperties(t *testing.T) {
	posted := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Get", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM properties WHERE id = \\$1").
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(propertyRowColumns).
				AddRow("p1", "Sea View", "₹45,00,000", "Goa", "", 2, 2, "1100 sqft", "Apartment", "", "Asha", "+91 98765 43210", posted, posted))

		property, err := store.GetProperty(context.Background(), "p1")

		require.NoError(t, err)
		assert.Equal(t, "Sea View", property.Name)
		assert.Equal(t, 2, property.Bedrooms)
		assert.Equal(t, "+91 98765 43210", property.OwnerPhone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM properties WHERE id = \\$1").
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(propertyRowColumns))

		_, err := store.GetProperty(context.Background(), "nope")

		assert.ErrorIs(t, err, storage.ErrPropertyNotFound)
	})

	t.Run("List", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM properties ORDER BY created_at DESC").
			WillReturnRows(sqlmock.NewRows(propertyRowColumns).
				AddRow("p2", "B", "1", "x", "", 1, 1, "", "", "", "o", "1", posted, posted).
				AddRow("p1", "A", "1", "x", "", 1, 1, "", "", "", "o", "1", posted, posted))

		properties, err := store.ListProperties(context.Background())

		require.NoError(t, err)
		require.Len(t, properties, 2)
		assert.Equal(t, "p2", properties[0].Id)
	})

	t.Run("Create", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO properties").WillReturnResult(sqlmock.NewResult(0, 1))

		property, err := store.CreateProperty(context.Background(), &models.Property{Name: "Sea View", OwnerPhone: "1"})

		require.NoError(t, err)
		assert.NotEmpty(t, property.Id)
		assert.Equal(t, property.CreatedAt, property.DatePosted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminSessions(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Create", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO admin_sessions").
			WithArgs("tok", "admin@example.com", issued).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.CreateSession(context.Background(), &models.AdminSession{Token: "tok", Email: "admin@example.com", IssuedAt: issued})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT token, email, issued_at FROM admin_sessions").
			WithArgs("tok").
			WillReturnRows(sqlmock.NewRows([]string{"token", "email", "issued_at"}).AddRow("tok", "admin@example.com", issued))

		session, err := store.GetSession(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", session.Email)
	})

	t.Run("Get Unknown", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT token, email, issued_at FROM admin_sessions").
			WillReturnRows(sqlmock.NewRows([]string{"token", "email", "issued_at"}))

		_, err := store.GetSession(context.Background(), "nope")

		assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("DELETE FROM admin_sessions WHERE token = \\$1").WithArgs("tok").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.DeleteSession(context.Background(), "tok"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWebSocketConnections(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO websocket_connections").WithArgs("conn1", "user1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.AddConnection(context.Background(), "conn1", "user1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get By User", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT connection_id FROM websocket_connections WHERE user_id = \\$1").
			WithArgs("user1").
			WillReturnRows(sqlmock.NewRows([]string{"connection_id"}).AddRow("conn1").AddRow("conn2"))

		ids, err := store.GetConnectionsByUser(context.Background(), "user1")

		require.NoError(t, err)
		assert.Equal(t, []string{"conn1", "conn2"}, ids)
	})

	t.Run("Remove", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("DELETE FROM websocket_connections").WithArgs("conn1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.RemoveConnection(context.Background(), "conn1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMigrate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS payment_attempts").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
