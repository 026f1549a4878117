package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devranvijay/PropertyPro/internal/models"
)

func newOfferFixture(t *testing.T, dbName string) (*mongo.Database, IOfferService, IUserService, IPropertyService) {
	db := setupTestDB(t, dbName)
	users := NewUserService(db)
	properties := NewPropertyService(db)
	return db, NewOfferService(db, users, properties), users, properties
}

func TestOfferService_CreateSnapshotsBuyer(t *testing.T) {
	db, svc, _, _ := newOfferFixture(t, "test_offer_create")
	ctx := context.Background()

	buyer := insertTestUser(t, db, "buyer", models.RoleBuyer, time.Now())
	seller := insertTestUser(t, db, "seller", models.RoleSeller, time.Now())
	property := insertTestProperty(t, db, seller.ID, "Cottage", 100000)

	offer, err := svc.Create(ctx, buyer, property.ID, 95000, "would move fast", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusPending, offer.Status)
	assert.Equal(t, buyer.Name, offer.BuyerName)
	assert.Equal(t, buyer.Email, offer.BuyerEmail)
	assert.Equal(t, "555-0100", offer.BuyerPhone)

	// Snapshot survives buyer deletion.
	_, err = db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": buyer.ID})
	require.NoError(t, err)

	offers, err := svc.ListByBuyer(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, buyer.Name, offers[0].BuyerName)
}

func TestOfferService_CreateMissingProperty(t *testing.T) {
	db, svc, _, _ := newOfferFixture(t, "test_offer_missing_property")
	buyer := insertTestUser(t, db, "buyer", models.RoleBuyer, time.Now())

	_, err := svc.Create(context.Background(), buyer, primitive.NewObjectID(), 1000, "", "")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestOfferService_CreateOrphanedPropertyNeedsAdmin(t *testing.T) {
	db, svc, _, _ := newOfferFixture(t, "test_offer_orphaned")
	ctx := context.Background()

	buyer := insertTestUser(t, db, "buyer", models.RoleBuyer, time.Now())
	// Property whose owner account never existed.
	property := insertTestProperty(t, db, primitive.NewObjectID(), "Orphaned", 100000)

	_, err := svc.Create(ctx, buyer, property.ID, 1000, "", "")
	assert.ErrorIs(t, err, ErrNoRecipient)

	// With an admin present the offer routes to them and succeeds.
	insertTestUser(t, db, "admin", models.RoleAdmin, time.Now())
	_, err = svc.Create(ctx, buyer, property.ID, 1000, "", "")
	assert.NoError(t, err)
}

func TestOfferService_ListReceivedFollowsOwnership(t *testing.T) {
	db, svc, _, _ := newOfferFixture(t, "test_offer_received")
	ctx := context.Background()

	buyer := insertTestUser(t, db, "buyer", models.RoleBuyer, time.Now())
	seller := insertTestUser(t, db, "seller", models.RoleSeller, time.Now())
	other := insertTestUser(t, db, "other", models.RoleSeller, time.Now())

	property := insertTestProperty(t, db, seller.ID, "Cottage", 100000)
	insertTestProperty(t, db, other.ID, "Theirs", 200000)

	_, err := svc.Create(ctx, buyer, property.ID, 90000, "", "")
	require.NoError(t, err)

	received, err := svc.ListReceived(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, received, 1)

	received, err = svc.ListReceived(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, received, 0)
}

func TestOfferService_UpdateStatusAuthorization(t *testing.T) {
	db, svc, _, _ := newOfferFixture(t, "test_offer_status")
	ctx := context.Background()

	buyer := insertTestUser(t, db, "buyer", models.RoleBuyer, time.Now())
	seller := insertTestUser(t, db, "seller", models.RoleSeller, time.Now())
	stranger := insertTestUser(t, db, "stranger", models.RoleSeller, time.Now())
	admin := insertTestUser(t, db, "admin", models.RoleAdmin, time.Now())
	property := insertTestProperty(t, db, seller.ID, "Cottage", 100000)

	offer, err := svc.Create(ctx, buyer, property.ID, 90000, "", "")
	require.NoError(t, err)

	// A seller who doesn't own the property may not act.
	_, err = svc.UpdateStatus(ctx, offer.ID, stranger, models.OfferStatusAccepted, nil, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// Neither may the buyer.
	_, err = svc.UpdateStatus(ctx, offer.ID, buyer, models.OfferStatusAccepted, nil, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// The owner may counter with an amount and note.
	counter := int64(97000)
	updated, err := svc.UpdateStatus(ctx, offer.ID, seller, models.OfferStatusCountered, &counter, "meet in the middle")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusCountered, updated.Status)
	require.NotNil(t, updated.CounterAmount)
	assert.Equal(t, counter, *updated.CounterAmount)
	assert.Equal(t, "meet in the middle", updated.SellerNote)

	// Admins may always act.
	updated, err = svc.UpdateStatus(ctx, offer.ID, admin, models.OfferStatusRejected, nil, "")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, updated.Status)

	_, err = svc.UpdateStatus(ctx, primitive.NewObjectID(), admin, models.OfferStatusAccepted, nil, "")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}
