package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"farmhub/internal/models"
)

func setupTestDB(t *testing.T) *mongo.Database {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	t.Helper()

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client.Database("testdb")
}

func seedProduct(t *testing.T, repo *ProductRepository, quantity int64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     "tomato seeds",
		Category: "seeds",
		Brand:    "AgriCo",
		Price:    100,
		Quantity: quantity,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestReserveStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db.Collection("products"))
	product := seedProduct(t, repo, 10)

	ctx := context.Background()
	updated, err := repo.ReserveStock(ctx, product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), updated.Quantity)

	_, err = repo.ReserveStock(ctx, product.ID, 7)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The failed reservation must not have touched stock.
	current, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), current.Quantity)

	released, err := repo.ReleaseStock(ctx, product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(10), released.Quantity)
}

// Hammer the conditional decrement: with 5 units and 8 workers each
// wanting 5, exactly one reservation may win.
func TestReserveStockConcurrent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db.Collection("products"))
	product := seedProduct(t, repo, 5)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ReserveStock(context.Background(), product.ID, 5)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)

	current, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), current.Quantity)
}

func TestCartUpsertMerges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Collection("users"))

	user := &models.User{Name: "asha", Email: "asha@example.com", PhoneNumber: "9876543210"}
	require.NoError(t, repo.Create(context.Background(), user))

	products := NewProductRepository(db.Collection("products"))
	product := seedProduct(t, products, 100)

	ctx := context.Background()
	updated, err := repo.CartUpsert(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, updated.Cart, 1)
	assert.Equal(t, int64(2), updated.Cart[0].Quantity)

	// A second add for the same product merges instead of appending.
	updated, err = repo.CartUpsert(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)
	require.Len(t, updated.Cart, 1)
	assert.Equal(t, int64(5), updated.Cart[0].Quantity)

	updated, err = repo.CartSetQuantity(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Cart[0].Quantity)

	updated, err = repo.CartRemove(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Cart)

	_, err = repo.CartRemove(ctx, user.ID, product.ID)
	assert.ErrorIs(t, err, ErrCartEntryNotFound)
}

func TestAddReviewInsertIfAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db.Collection("products"))
	product := seedProduct(t, repo, 1)

	users := NewUserRepository(db.Collection("users"))
	user := &models.User{Name: "asha", Email: "asha@example.com", PhoneNumber: "9876543210"}
	require.NoError(t, users.Create(context.Background(), user))

	ctx := context.Background()
	review := models.Review{User: user.ID, Rating: 4, Description: "good germination"}
	updated, err := repo.AddReview(ctx, product.ID, review)
	require.NoError(t, err)
	require.Len(t, updated.Reviews, 1)

	// A second add by the same user is rejected, not duplicated.
	_, err = repo.AddReview(ctx, product.ID, models.Review{User: user.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrReviewExists)

	updated, err = repo.UpdateReview(ctx, product.ID, models.Review{User: user.ID, Rating: 5, Description: "even better"})
	require.NoError(t, err)
	require.Len(t, updated.Reviews, 1)
	assert.Equal(t, 5, updated.Reviews[0].Rating)

	updated, err = repo.DeleteReview(ctx, product.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Reviews)
}

func TestOrderLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db.Collection("orders"))

	productID := seedProduct(t, NewProductRepository(db.Collection("products")), 1).ID
	userID := primitive.NewObjectID()
	orders := []models.Order{
		{Product: productID, Quantity: 2, Subtotal: 2000, Tax: 360, Total: 2360, User: userID},
		{Product: productID, Quantity: 1, Subtotal: 100, ShippingCharges: 60, Tax: 18, Total: 178, User: userID},
	}

	ctx := context.Background()
	created, err := repo.InsertMany(ctx, orders)
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, o := range created {
		assert.False(t, o.ID.IsZero())
		assert.Equal(t, models.StatusProcessing, o.Status)
	}

	list, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	updated, err := repo.UpdateStatus(ctx, created[0].ID, models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, updated.Status)
	require.NotNil(t, updated.DateDelivered)
	assert.WithinDuration(t, time.Now(), *updated.DateDelivered, time.Minute)
}
