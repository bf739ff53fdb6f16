package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Настройки подключения к БД.
type DB struct {
	Host            string `envconfig:"DB_HOST" default:"postgres"`
	Port            int    `envconfig:"DB_PORT" default:"5432"`
	User            string `envconfig:"DB_USER" default:"academy"`
	Password        string `envconfig:"DB_PASSWORD" default:"academy"`
	Name            string `envconfig:"DB_NAME" default:"academy_db"`
	SSLMode         string `envconfig:"DB_SSLMODE" default:"disable"`
	TimeZone        string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxOpenConns    int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifeTime int    `envconfig:"DB_CONN_MAX_LIFETIME_MIN" default:"30"` // минут
}

// Дефолты бронирования. Явные настройки вместо «магических чисел»
// по месту вызова, чтобы тесты могли их переопределять.
type Booking struct {
	DefaultCapacity   int    `envconfig:"BOOKING_DEFAULT_CAPACITY" default:"6"`
	DefaultQuota      int    `envconfig:"BOOKING_DEFAULT_QUOTA" default:"4"`
	DefaultCourseType string `envconfig:"BOOKING_DEFAULT_COURSE_TYPE" default:"kids"`
}

type App struct {
	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`

	DB      DB
	Booking Booking
}

func Load() (App, error) {
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}
	if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
		return App{}, fmt.Errorf("invalid DB config: host/user/name must not be empty")
	}
	return c, nil
}
