// Package store wraps GORM behind the queries the handlers need. All
// ownership resolution for the authorization policy lives here: menu items
// and orders resolve to their parent restaurant's owner with a one-hop
// lookup before any policy call.
package store

import (
	"errors"

	"foodplatform/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ── Users ───────────────────────────────────────────────────────────────

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *Store) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Users lists all accounts, optionally filtered by role.
func (s *Store) Users(role models.Role) ([]models.User, error) {
	var users []models.User
	query := s.db
	if role != "" {
		query = query.Where("role = ?", role)
	}
	return users, query.Find(&users).Error
}

// ── Restaurants ─────────────────────────────────────────────────────────

func (s *Store) CreateRestaurant(r *models.Restaurant) error {
	return s.db.Create(r).Error
}

func (s *Store) RestaurantByID(id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.Preload("MenuItems").First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// RestaurantFilter narrows the public catalog listing.
type RestaurantFilter struct {
	Cuisine string
	Search  string
}

// Restaurants returns the public catalog: active restaurants only.
// Inactive restaurants stay reachable for their owner through
// RestaurantsByOwner and for admins through AllRestaurants.
func (s *Store) Restaurants(f RestaurantFilter) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	query := s.db.Where("is_active = ?", true)
	if f.Cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+f.Cuisine+"%")
	}
	if f.Search != "" {
		query = query.Where("name LIKE ?", "%"+f.Search+"%")
	}
	return restaurants, query.Find(&restaurants).Error
}

// RestaurantsByOwner returns every restaurant of an owner, active or not.
func (s *Store) RestaurantsByOwner(ownerID uint) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.Preload("MenuItems").Where("owner_id = ?", ownerID).Find(&restaurants).Error
	return restaurants, err
}

// AllRestaurants is the admin management view, visibility unfiltered.
func (s *Store) AllRestaurants() ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.Preload("Owner").Find(&restaurants).Error
	return restaurants, err
}

// RestaurantOwner resolves a restaurant to its owner's user ID.
func (s *Store) RestaurantOwner(restaurantID uint) (uint, error) {
	var r models.Restaurant
	if err := s.db.Select("id", "owner_id").First(&r, restaurantID).Error; err != nil {
		return 0, translate(err)
	}
	return r.OwnerID, nil
}

// UpdateRestaurant applies a field update. The caller whitelists fields;
// OwnerID is never among them.
func (s *Store) UpdateRestaurant(r *models.Restaurant, fields map[string]interface{}) error {
	return s.db.Model(r).Updates(fields).Error
}

// ── Menu items ──────────────────────────────────────────────────────────

func (s *Store) CreateMenuItem(item *models.MenuItem) error {
	return s.db.Create(item).Error
}

func (s *Store) MenuItemByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// MenuItemRestaurant resolves a menu item to its parent restaurant. A menu
// item's effective owner is always that restaurant's owner.
func (s *Store) MenuItemRestaurant(menuItemID uint) (uint, error) {
	var item models.MenuItem
	if err := s.db.Select("id", "restaurant_id").First(&item, menuItemID).Error; err != nil {
		return 0, translate(err)
	}
	return item.RestaurantID, nil
}

// Menu lists a restaurant's items. The public catalog sees available items
// only; owners and admins pass includeUnavailable for management reads.
func (s *Store) Menu(restaurantID uint, includeUnavailable bool) ([]models.MenuItem, error) {
	var items []models.MenuItem
	query := s.db.Where("restaurant_id = ?", restaurantID)
	if !includeUnavailable {
		query = query.Where("is_available = ?", true)
	}
	return items, query.Find(&items).Error
}

func (s *Store) UpdateMenuItem(item *models.MenuItem, fields map[string]interface{}) error {
	return s.db.Model(item).Updates(fields).Error
}

func (s *Store) DeleteMenuItem(item *models.MenuItem) error {
	return s.db.Delete(item).Error
}

// ── Orders ──────────────────────────────────────────────────────────────

func (s *Store) CreateOrder(order *models.Order) error {
	return s.db.Create(order).Error
}

func (s *Store) OrderByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("StatusHistory").First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *Store) OrdersByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (s *Store) OrdersByRestaurant(restaurantID uint, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.Preload("Items").Preload("Customer").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// AllOrders is the admin view across every restaurant.
func (s *Store) AllOrders(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.Preload("Items").Preload("Customer").Preload("Restaurant")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// SaveOrderStatus persists a lifecycle change already validated by the
// state machine. Only status and payment_status are written.
func (s *Store) SaveOrderStatus(order *models.Order) error {
	return s.db.Model(order).Updates(map[string]interface{}{
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
	}).Error
}

func (s *Store) AddStatusHistory(h *models.OrderStatusHistory) error {
	return s.db.Create(h).Error
}
