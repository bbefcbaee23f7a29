package aggregator

import (
	"context"
	"fmt"
	"time"

	"ecocruise-admin/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository runs the aggregation queries directly against the platform
// database. Everything here is read-only.
type Repository struct {
	users        *mongo.Collection
	rides        *mongo.Collection
	transactions *mongo.Collection
	payouts      *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		users:        db.Collection("users"),
		rides:        db.Collection("rides"),
		transactions: db.Collection("transactions"),
		payouts:      db.Collection("payout_transactions"),
	}
}

// buildDateFilter translates the query-string range into a createdAt
// filter. An empty filter means all time.
func buildDateFilter(rangeParam, from, to string, now time.Time) bson.M {
	switch rangeParam {
	case "7":
		return bson.M{"createdAt": bson.M{"$gte": now.AddDate(0, 0, -7)}}
	case "month":
		return bson.M{"createdAt": bson.M{"$gte": now.AddDate(0, -1, 0)}}
	}

	if from != "" && to != "" {
		fromT, errFrom := time.Parse("2006-01-02", from)
		toT, errTo := time.Parse("2006-01-02", to)
		if errFrom == nil && errTo == nil {
			// Include the whole end day.
			return bson.M{"createdAt": bson.M{
				"$gte": fromT,
				"$lte": toT.AddDate(0, 0, 1),
			}}
		}
	}

	return bson.M{}
}

func (r *Repository) CountRides(ctx context.Context, dateFilter bson.M) (int64, error) {
	n, err := r.rides.CountDocuments(ctx, dateFilter)
	if err != nil {
		return 0, fmt.Errorf("failed to count rides: %w", err)
	}
	return n, nil
}

// TotalRevenue sums the debit transactions in the window: every ride fare
// is charged as a wallet debit, so debits are the platform's revenue.
func (r *Repository) TotalRevenue(ctx context.Context, dateFilter bson.M) (float64, error) {
	match := bson.M{"type": "debit"}
	for k, v := range dateFilter {
		match[k] = v
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.transactions.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("failed to decode revenue: %w", err)
		}
	}
	return result.Total, nil
}

func (r *Repository) CountActiveDrivers(ctx context.Context) (int64, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{
		"role":     "driver",
		"isOnline": true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active drivers: %w", err)
	}
	return n, nil
}

func (r *Repository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{"role": string(role)})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s users: %w", role, err)
	}
	return n, nil
}

// DriverPayoutBreakdown groups payout transactions by driver, joining the
// users collection for name and email, sorted by total paid descending.
// The lookup preserves payouts whose driver record no longer resolves;
// those rows keep blank name/email but still count toward the totals.
func (r *Repository) DriverPayoutBreakdown(ctx context.Context, dateFilter bson.M) ([]models.PayoutEntry, error) {
	cursor, err := r.payouts.Aggregate(ctx, payoutPipeline(dateFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate driver payouts: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.PayoutEntry{}
	for cursor.Next(ctx) {
		var row struct {
			DriverID  primitive.ObjectID `bson:"_id"`
			Name      string             `bson:"name"`
			Email     string             `bson:"email"`
			TotalPaid float64            `bson:"totalPaid"`
			LastPaid  time.Time          `bson:"lastPaid"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode payout row: %w", err)
		}
		entries = append(entries, models.PayoutEntry{
			DriverID:  row.DriverID.Hex(),
			Name:      row.Name,
			Email:     row.Email,
			TotalPaid: row.TotalPaid,
			LastPaid:  row.LastPaid,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payout rows: %w", err)
	}
	return entries, nil
}

func payoutPipeline(dateFilter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: dateFilter}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "driver",
			"foreignField": "_id",
			"as":           "driverInfo",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$driverInfo",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$driver",
			"name":      bson.M{"$first": "$driverInfo.name"},
			"email":     bson.M{"$first": "$driverInfo.email"},
			"totalPaid": bson.M{"$sum": "$amount"},
			"lastPaid":  bson.M{"$max": "$createdAt"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalPaid", Value: -1}}}},
	}
}
