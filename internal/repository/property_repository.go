package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/mviller/propnest/internal/model"
)

// PropertyRepo persists property listings. Images and amenities are
// serialized to JSON text columns on write and decoded on read so the
// rest of the application only ever sees string slices.
type PropertyRepo struct{ DB *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{DB: db} }

// SearchQuery describes the public listing filters. Zero values mean
// "not filtered". Query and Location each expand into a LIKE group;
// together they form a single OR block while every other filter is
// ANDed on top.
type SearchQuery struct {
	Query     string
	Location  string
	Type      string
	MinPrice  *float64
	MaxPrice  *float64
	Bedrooms  *int
	Bathrooms *int
	Page      int
	Limit     int
}

const propertyColumns = `p.id,p.title,p.description,p.price,p.type,p.status,
		p.bedrooms,p.bathrooms,p.area,p.address,p.city,p.state,p.zip_code,
		p.latitude,p.longitude,p.images,p.amenities,p.owner_id,p.created_at,p.updated_at,
		u.id,u.name,u.email,u.phone,u.avatar`

const propertyFrom = ` FROM properties p JOIN users u ON u.id = p.owner_id`

// Create inserts a listing for ownerID and returns the stored record
// with the owner embedded.
func (r *PropertyRepo) Create(ctx context.Context, ownerID string, p model.Property) (model.Property, error) {
	p.ID = uuid.NewString()
	p.OwnerID = ownerID
	if p.Status == "" {
		p.Status = model.StatusAvailable
	}
	images, err := encodeStrings(p.Images)
	if err != nil {
		return model.Property{}, err
	}
	amenities, err := encodeStrings(p.Amenities)
	if err != nil {
		return model.Property{}, err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO properties
		(id,title,description,price,type,status,bedrooms,bathrooms,area,
		 address,city,state,zip_code,latitude,longitude,images,amenities,owner_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Title, p.Description, p.Price, p.Type, p.Status,
		p.Bedrooms, p.Bathrooms, p.Area, p.Address, p.City, p.State,
		p.ZipCode, p.Latitude, p.Longitude, images, amenities, p.OwnerID)
	if err != nil {
		return model.Property{}, err
	}
	return r.GetByID(ctx, p.ID)
}

// GetByID fetches a single listing with its owner. Missing rows map
// to ErrPropertyNotFound.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (model.Property, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+propertyColumns+propertyFrom+" WHERE p.id=? LIMIT 1", id)
	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return model.Property{}, ErrPropertyNotFound
	}
	return p, err
}

// Search returns the page of AVAILABLE listings matching q plus the
// total match count, newest first.
func (r *PropertyRepo) Search(ctx context.Context, q SearchQuery) ([]model.Property, int64, error) {
	where := []string{"p.status = ?"}
	args := []any{model.StatusAvailable}

	// q and location contribute to one shared OR group: a term may hit
	// the text fields or the location fields.
	var likes []string
	var likeArgs []any
	if s := strings.TrimSpace(q.Query); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		likes = append(likes, "LOWER(p.title) LIKE ?", "LOWER(p.description) LIKE ?")
		likeArgs = append(likeArgs, pat, pat)
	}
	if s := strings.TrimSpace(q.Location); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		likes = append(likes, "LOWER(p.city) LIKE ?", "LOWER(p.state) LIKE ?", "LOWER(p.address) LIKE ?")
		likeArgs = append(likeArgs, pat, pat, pat)
	}
	if len(likes) > 0 {
		where = append(where, "("+strings.Join(likes, " OR ")+")")
		args = append(args, likeArgs...)
	}
	if q.Type != "" {
		where = append(where, "p.type = ?")
		args = append(args, q.Type)
	}
	if q.MinPrice != nil {
		where = append(where, "p.price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "p.price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.Bedrooms != nil {
		where = append(where, "p.bedrooms = ?")
		args = append(args, *q.Bedrooms)
	}
	if q.Bathrooms != nil {
		where = append(where, "p.bathrooms = ?")
		args = append(args, *q.Bathrooms)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*)"+propertyFrom+" WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	offset := (q.Page - 1) * q.Limit
	dataSQL := "SELECT " + propertyColumns + propertyFrom + " WHERE " + cond +
		" ORDER BY p.created_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update applies a partial update and returns the refreshed record.
// Callers are responsible for the ownership check; this method only
// writes. An empty patch is a no-op read.
func (r *PropertyRepo) Update(ctx context.Context, id string, patch model.PropertyPatch) (model.Property, error) {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Bedrooms != nil {
		add("bedrooms", *patch.Bedrooms)
	}
	if patch.Bathrooms != nil {
		add("bathrooms", *patch.Bathrooms)
	}
	if patch.Area != nil {
		add("area", *patch.Area)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.City != nil {
		add("city", *patch.City)
	}
	if patch.State != nil {
		add("state", *patch.State)
	}
	if patch.ZipCode != nil {
		add("zip_code", *patch.ZipCode)
	}
	if patch.Latitude != nil {
		add("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		add("longitude", *patch.Longitude)
	}
	if patch.Images != nil {
		enc, err := encodeStrings(*patch.Images)
		if err != nil {
			return model.Property{}, err
		}
		add("images", enc)
	}
	if patch.Amenities != nil {
		enc, err := encodeStrings(*patch.Amenities)
		if err != nil {
			return model.Property{}, err
		}
		add("amenities", enc)
	}
	if len(set) > 0 {
		args = append(args, id)
		_, err := r.DB.ExecContext(ctx,
			"UPDATE properties SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return model.Property{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a listing and its messages. Messages cascade at the
// schema level, so this is a single statement.
func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProperty(row rowScanner) (model.Property, error) {
	var p model.Property
	var owner model.UserPart
	var images string
	var amenities sql.NullString
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Type, &p.Status,
		&p.Bedrooms, &p.Bathrooms, &p.Area, &p.Address, &p.City, &p.State,
		&p.ZipCode, &p.Latitude, &p.Longitude, &images, &amenities,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email, &owner.Phone, &owner.Avatar)
	if err != nil {
		return model.Property{}, err
	}
	if p.Images, err = decodeStrings(images); err != nil {
		return model.Property{}, err
	}
	p.Amenities = []string{}
	if amenities.Valid && amenities.String != "" {
		if p.Amenities, err = decodeStrings(amenities.String); err != nil {
			return model.Property{}, err
		}
	}
	p.Owner = &owner
	return p, nil
}

func encodeStrings(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStrings(s string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
