package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createProviderTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE external_api_providers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		category TEXT NOT NULL,
		base_url TEXT NOT NULL,
		docs_url TEXT,
		description TEXT,
		auth_type TEXT NOT NULL,
		auth_key_name TEXT,
		default_headers TEXT,
		rate_limit_per_min INTEGER DEFAULT 0,
		rate_limit_per_day INTEGER DEFAULT 0,
		is_active BOOLEAN NOT NULL,
		is_premium BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAPIKeyTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_api_keys (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		provider_id TEXT NOT NULL,
		label TEXT,
		encrypted_key BLOB NOT NULL,
		masked_key TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		usage_count INTEGER NOT NULL DEFAULT 0,
		last_used_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME,
		UNIQUE(user_id, provider_id)
	);`)
	mustExec(t, db, `CREATE TABLE system_api_keys (
		id TEXT PRIMARY KEY,
		provider_id TEXT NOT NULL UNIQUE,
		encrypted_key BLOB NOT NULL,
		masked_key TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		allow_user_override BOOLEAN NOT NULL,
		usage_count INTEGER NOT NULL DEFAULT 0,
		last_used_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createStationTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE weather_stations (
		id TEXT PRIMARY KEY,
		station_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		address TEXT,
		is_active BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE air_quality_sensors (
		id TEXT PRIMARY KEY,
		sensor_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		address TEXT,
		is_active BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createObservationTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE weather_observations (
		id TEXT PRIMARY KEY,
		station_id TEXT,
		location_name TEXT,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		temperature REAL,
		humidity REAL,
		pressure REAL,
		wind_speed REAL,
		wind_direction REAL,
		precipitation REAL,
		weather_type TEXT,
		source TEXT,
		observed_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE air_quality_observations (
		id TEXT PRIMARY KEY,
		sensor_id TEXT,
		location_name TEXT,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		air_quality_index REAL,
		pm25 REAL,
		pm10 REAL,
		no2 REAL,
		o3 REAL,
		co REAL,
		so2 REAL,
		source TEXT,
		observed_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func createNGSIEntityTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ngsi_entities (
		id TEXT PRIMARY KEY,
		entity_id TEXT NOT NULL UNIQUE,
		entity_type TEXT NOT NULL,
		document TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		synced_to_orion BOOLEAN NOT NULL,
		last_sync_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createInfrastructureTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE water_supply_points (
		id TEXT PRIMARY KEY,
		entity_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		point_type TEXT,
		status TEXT NOT NULL,
		capacity REAL,
		current_level REAL,
		flow_rate REAL,
		pressure REAL,
		ph_level REAL,
		chlorine_level REAL,
		turbidity REAL,
		last_reading_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE street_lights (
		id TEXT PRIMARY KEY,
		entity_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		lamp_type TEXT,
		status TEXT NOT NULL,
		power_rating REAL,
		brightness_level REAL,
		energy_consumed_today REAL,
		operating_hours REAL,
		is_smart BOOLEAN NOT NULL,
		last_reading_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTrafficTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE traffic_flow_observations (
		id TEXT PRIMARY KEY,
		observation_id TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		road_name TEXT,
		intensity INTEGER NOT NULL,
		occupancy REAL,
		average_speed REAL,
		observed_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE traffic_incidents (
		id TEXT PRIMARY KEY,
		entity_id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		incident_type TEXT,
		severity TEXT NOT NULL,
		status TEXT NOT NULL,
		description TEXT,
		reported_at DATETIME NOT NULL,
		resolved_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE parking_spots (
		id TEXT PRIMARY KEY,
		entity_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		parking_type TEXT,
		status TEXT NOT NULL,
		total_spaces INTEGER,
		available_spaces INTEGER,
		price_per_hour REAL,
		currency TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
