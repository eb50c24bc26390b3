package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	domainerrors "github.com/Hazhaz1412/smart-city-iot/internal/domain/errors"
	"github.com/Hazhaz1412/smart-city-iot/internal/infrastructure/models"
)

// WaterSupplyPointRepository implements water supply asset storage
type WaterSupplyPointRepository struct {
	db *gorm.DB
}

func NewWaterSupplyPointRepository(db *gorm.DB) *WaterSupplyPointRepository {
	return &WaterSupplyPointRepository{db: db}
}

func (r *WaterSupplyPointRepository) Create(ctx context.Context, point *entities.WaterSupplyPoint) error {
	m := waterPointToModel(point)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	point.ID = m.ID
	point.CreatedAt = m.CreatedAt
	point.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *WaterSupplyPointRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.WaterSupplyPoint, error) {
	var m models.WaterSupplyPoint
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return waterPointToEntity(&m), nil
}

func (r *WaterSupplyPointRepository) List(ctx context.Context) ([]*entities.WaterSupplyPoint, error) {
	var pointModels []models.WaterSupplyPoint
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&pointModels).Error; err != nil {
		return nil, err
	}
	points := make([]*entities.WaterSupplyPoint, 0, len(pointModels))
	for i := range pointModels {
		points = append(points, waterPointToEntity(&pointModels[i]))
	}
	return points, nil
}

func (r *WaterSupplyPointRepository) Update(ctx context.Context, point *entities.WaterSupplyPoint) error {
	m := waterPointToModel(point)
	result := r.db.WithContext(ctx).Model(&models.WaterSupplyPoint{}).
		Where("id = ?", point.ID).
		Updates(map[string]interface{}{
			"name":            m.Name,
			"latitude":        m.Latitude,
			"longitude":       m.Longitude,
			"point_type":      m.PointType,
			"status":          m.Status,
			"capacity":        m.Capacity,
			"current_level":   m.CurrentLevel,
			"flow_rate":       m.FlowRate,
			"pressure":        m.Pressure,
			"ph_level":        m.PHLevel,
			"chlorine_level":  m.ChlorineLevel,
			"turbidity":       m.Turbidity,
			"last_reading_at": m.LastReadingAt,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *WaterSupplyPointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.WaterSupplyPoint{}, id)
}

func waterPointToModel(e *entities.WaterSupplyPoint) *models.WaterSupplyPoint {
	return &models.WaterSupplyPoint{
		ID:            e.ID,
		EntityID:      e.EntityID,
		Name:          e.Name,
		Latitude:      e.Latitude,
		Longitude:     e.Longitude,
		PointType:     e.PointType,
		Status:        string(e.Status),
		Capacity:      e.Capacity,
		CurrentLevel:  e.CurrentLevel,
		FlowRate:      e.FlowRate.Ptr(),
		Pressure:      e.Pressure.Ptr(),
		PHLevel:       e.PHLevel.Ptr(),
		ChlorineLevel: e.ChlorineLevel.Ptr(),
		Turbidity:     e.Turbidity.Ptr(),
		LastReadingAt: e.LastReadingAt,
	}
}

func waterPointToEntity(m *models.WaterSupplyPoint) *entities.WaterSupplyPoint {
	return &entities.WaterSupplyPoint{
		ID:            m.ID,
		EntityID:      m.EntityID,
		Name:          m.Name,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		PointType:     m.PointType,
		Status:        entities.InfrastructureStatus(m.Status),
		Capacity:      m.Capacity,
		CurrentLevel:  m.CurrentLevel,
		FlowRate:      null.Float64FromPtr(m.FlowRate),
		Pressure:      null.Float64FromPtr(m.Pressure),
		PHLevel:       null.Float64FromPtr(m.PHLevel),
		ChlorineLevel: null.Float64FromPtr(m.ChlorineLevel),
		Turbidity:     null.Float64FromPtr(m.Turbidity),
		LastReadingAt: m.LastReadingAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// DrainagePointRepository implements drainage asset storage
type DrainagePointRepository struct {
	db *gorm.DB
}

func NewDrainagePointRepository(db *gorm.DB) *DrainagePointRepository {
	return &DrainagePointRepository{db: db}
}

func (r *DrainagePointRepository) Create(ctx context.Context, point *entities.DrainagePoint) error {
	m := drainagePointToModel(point)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	point.ID = m.ID
	point.CreatedAt = m.CreatedAt
	point.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *DrainagePointRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.DrainagePoint, error) {
	var m models.DrainagePoint
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return drainagePointToEntity(&m), nil
}

func (r *DrainagePointRepository) List(ctx context.Context) ([]*entities.DrainagePoint, error) {
	var pointModels []models.DrainagePoint
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&pointModels).Error; err != nil {
		return nil, err
	}
	points := make([]*entities.DrainagePoint, 0, len(pointModels))
	for i := range pointModels {
		points = append(points, drainagePointToEntity(&pointModels[i]))
	}
	return points, nil
}

func (r *DrainagePointRepository) Update(ctx context.Context, point *entities.DrainagePoint) error {
	m := drainagePointToModel(point)
	result := r.db.WithContext(ctx).Model(&models.DrainagePoint{}).
		Where("id = ?", point.ID).
		Updates(map[string]interface{}{
			"name":            m.Name,
			"latitude":        m.Latitude,
			"longitude":       m.Longitude,
			"point_type":      m.PointType,
			"status":          m.Status,
			"flood_risk":      m.FloodRisk,
			"capacity":        m.Capacity,
			"current_level":   m.CurrentLevel,
			"flow_rate":       m.FlowRate,
			"last_reading_at": m.LastReadingAt,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *DrainagePointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.DrainagePoint{}, id)
}

func drainagePointToModel(e *entities.DrainagePoint) *models.DrainagePoint {
	return &models.DrainagePoint{
		ID:            e.ID,
		EntityID:      e.EntityID,
		Name:          e.Name,
		Latitude:      e.Latitude,
		Longitude:     e.Longitude,
		PointType:     e.PointType,
		Status:        string(e.Status),
		FloodRisk:     e.FloodRisk,
		Capacity:      e.Capacity,
		CurrentLevel:  e.CurrentLevel,
		FlowRate:      e.FlowRate.Ptr(),
		LastReadingAt: e.LastReadingAt,
	}
}

func drainagePointToEntity(m *models.DrainagePoint) *entities.DrainagePoint {
	return &entities.DrainagePoint{
		ID:            m.ID,
		EntityID:      m.EntityID,
		Name:          m.Name,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		PointType:     m.PointType,
		Status:        entities.InfrastructureStatus(m.Status),
		FloodRisk:     m.FloodRisk,
		Capacity:      m.Capacity,
		CurrentLevel:  m.CurrentLevel,
		FlowRate:      null.Float64FromPtr(m.FlowRate),
		LastReadingAt: m.LastReadingAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// StreetLightRepository implements street light asset storage
type StreetLightRepository struct {
	db *gorm.DB
}

func NewStreetLightRepository(db *gorm.DB) *StreetLightRepository {
	return &StreetLightRepository{db: db}
}

func (r *StreetLightRepository) Create(ctx context.Context, light *entities.StreetLight) error {
	m := streetLightToModel(light)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	light.ID = m.ID
	light.CreatedAt = m.CreatedAt
	light.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *StreetLightRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.StreetLight, error) {
	var m models.StreetLight
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return streetLightToEntity(&m), nil
}

func (r *StreetLightRepository) List(ctx context.Context) ([]*entities.StreetLight, error) {
	var lightModels []models.StreetLight
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&lightModels).Error; err != nil {
		return nil, err
	}
	lights := make([]*entities.StreetLight, 0, len(lightModels))
	for i := range lightModels {
		lights = append(lights, streetLightToEntity(&lightModels[i]))
	}
	return lights, nil
}

func (r *StreetLightRepository) Update(ctx context.Context, light *entities.StreetLight) error {
	m := streetLightToModel(light)
	result := r.db.WithContext(ctx).Model(&models.StreetLight{}).
		Where("id = ?", light.ID).
		Updates(map[string]interface{}{
			"name":                  m.Name,
			"latitude":              m.Latitude,
			"longitude":             m.Longitude,
			"lamp_type":             m.LampType,
			"status":                m.Status,
			"power_rating":          m.PowerRating,
			"brightness_level":      m.BrightnessLevel,
			"energy_consumed_today": m.EnergyConsumedToday,
			"operating_hours":       m.OperatingHours,
			"is_smart":              m.IsSmart,
			"last_reading_at":       m.LastReadingAt,
			"updated_at":            time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *StreetLightRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.StreetLight{}, id)
}

func streetLightToModel(e *entities.StreetLight) *models.StreetLight {
	return &models.StreetLight{
		ID:                  e.ID,
		EntityID:            e.EntityID,
		Name:                e.Name,
		Latitude:            e.Latitude,
		Longitude:           e.Longitude,
		LampType:            e.LampType,
		Status:              string(e.Status),
		PowerRating:         e.PowerRating.Ptr(),
		BrightnessLevel:     e.BrightnessLevel.Ptr(),
		EnergyConsumedToday: e.EnergyConsumedToday.Ptr(),
		OperatingHours:      e.OperatingHours.Ptr(),
		IsSmart:             e.IsSmart,
		LastReadingAt:       e.LastReadingAt,
	}
}

func streetLightToEntity(m *models.StreetLight) *entities.StreetLight {
	return &entities.StreetLight{
		ID:                  m.ID,
		EntityID:            m.EntityID,
		Name:                m.Name,
		Latitude:            m.Latitude,
		Longitude:           m.Longitude,
		LampType:            m.LampType,
		Status:              entities.InfrastructureStatus(m.Status),
		PowerRating:         null.Float64FromPtr(m.PowerRating),
		BrightnessLevel:     null.Float64FromPtr(m.BrightnessLevel),
		EnergyConsumedToday: null.Float64FromPtr(m.EnergyConsumedToday),
		OperatingHours:      null.Float64FromPtr(m.OperatingHours),
		IsSmart:             m.IsSmart,
		LastReadingAt:       m.LastReadingAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// EnergyMeterRepository implements energy meter asset storage
type EnergyMeterRepository struct {
	db *gorm.DB
}

func NewEnergyMeterRepository(db *gorm.DB) *EnergyMeterRepository {
	return &EnergyMeterRepository{db: db}
}

func (r *EnergyMeterRepository) Create(ctx context.Context, meter *entities.EnergyMeter) error {
	m := energyMeterToModel(meter)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	meter.ID = m.ID
	meter.CreatedAt = m.CreatedAt
	meter.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *EnergyMeterRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.EnergyMeter, error) {
	var m models.EnergyMeter
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return energyMeterToEntity(&m), nil
}

func (r *EnergyMeterRepository) List(ctx context.Context) ([]*entities.EnergyMeter, error) {
	var meterModels []models.EnergyMeter
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&meterModels).Error; err != nil {
		return nil, err
	}
	meters := make([]*entities.EnergyMeter, 0, len(meterModels))
	for i := range meterModels {
		meters = append(meters, energyMeterToEntity(&meterModels[i]))
	}
	return meters, nil
}

func (r *EnergyMeterRepository) Update(ctx context.Context, meter *entities.EnergyMeter) error {
	m := energyMeterToModel(meter)
	result := r.db.WithContext(ctx).Model(&models.EnergyMeter{}).
		Where("id = ?", meter.ID).
		Updates(map[string]interface{}{
			"name":              m.Name,
			"latitude":          m.Latitude,
			"longitude":         m.Longitude,
			"meter_type":        m.MeterType,
			"status":            m.Status,
			"current_power":     m.CurrentPower,
			"voltage":           m.Voltage,
			"current":           m.Current,
			"power_factor":      m.PowerFactor,
			"frequency":         m.Frequency,
			"today_consumption": m.TodayConsumption,
			"month_consumption": m.MonthConsumption,
			"last_reading_at":   m.LastReadingAt,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *EnergyMeterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.EnergyMeter{}, id)
}

func energyMeterToModel(e *entities.EnergyMeter) *models.EnergyMeter {
	return &models.EnergyMeter{
		ID:               e.ID,
		EntityID:         e.EntityID,
		Name:             e.Name,
		Latitude:         e.Latitude,
		Longitude:        e.Longitude,
		MeterType:        e.MeterType,
		Status:           string(e.Status),
		CurrentPower:     e.CurrentPower.Ptr(),
		Voltage:          e.Voltage.Ptr(),
		Current:          e.Current.Ptr(),
		PowerFactor:      e.PowerFactor.Ptr(),
		Frequency:        e.Frequency.Ptr(),
		TodayConsumption: e.TodayConsumption.Ptr(),
		MonthConsumption: e.MonthConsumption.Ptr(),
		LastReadingAt:    e.LastReadingAt,
	}
}

func energyMeterToEntity(m *models.EnergyMeter) *entities.EnergyMeter {
	return &entities.EnergyMeter{
		ID:               m.ID,
		EntityID:         m.EntityID,
		Name:             m.Name,
		Latitude:         m.Latitude,
		Longitude:        m.Longitude,
		MeterType:        m.MeterType,
		Status:           entities.InfrastructureStatus(m.Status),
		CurrentPower:     null.Float64FromPtr(m.CurrentPower),
		Voltage:          null.Float64FromPtr(m.Voltage),
		Current:          null.Float64FromPtr(m.Current),
		PowerFactor:      null.Float64FromPtr(m.PowerFactor),
		Frequency:        null.Float64FromPtr(m.Frequency),
		TodayConsumption: null.Float64FromPtr(m.TodayConsumption),
		MonthConsumption: null.Float64FromPtr(m.MonthConsumption),
		LastReadingAt:    m.LastReadingAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// TelecomTowerRepository implements telecom tower asset storage
type TelecomTowerRepository struct {
	db *gorm.DB
}

func NewTelecomTowerRepository(db *gorm.DB) *TelecomTowerRepository {
	return &TelecomTowerRepository{db: db}
}

func (r *TelecomTowerRepository) Create(ctx context.Context, tower *entities.TelecomTower) error {
	m := telecomTowerToModel(tower)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tower.ID = m.ID
	tower.CreatedAt = m.CreatedAt
	tower.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TelecomTowerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.TelecomTower, error) {
	var m models.TelecomTower
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return telecomTowerToEntity(&m), nil
}

func (r *TelecomTowerRepository) List(ctx context.Context) ([]*entities.TelecomTower, error) {
	var towerModels []models.TelecomTower
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&towerModels).Error; err != nil {
		return nil, err
	}
	towers := make([]*entities.TelecomTower, 0, len(towerModels))
	for i := range towerModels {
		towers = append(towers, telecomTowerToEntity(&towerModels[i]))
	}
	return towers, nil
}

func (r *TelecomTowerRepository) Update(ctx context.Context, tower *entities.TelecomTower) error {
	m := telecomTowerToModel(tower)
	result := r.db.WithContext(ctx).Model(&models.TelecomTower{}).
		Where("id = ?", tower.ID).
		Updates(map[string]interface{}{
			"name":               m.Name,
			"latitude":           m.Latitude,
			"longitude":          m.Longitude,
			"tower_type":         m.TowerType,
			"status":             m.Status,
			"height":             m.Height,
			"coverage_radius":    m.CoverageRadius,
			"active_connections": m.ActiveConnections,
			"max_connections":    m.MaxConnections,
			"bandwidth_usage":    m.BandwidthUsage,
			"signal_strength":    m.SignalStrength,
			"last_reading_at":    m.LastReadingAt,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TelecomTowerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.TelecomTower{}, id)
}

func telecomTowerToModel(e *entities.TelecomTower) *models.TelecomTower {
	return &models.TelecomTower{
		ID:                e.ID,
		EntityID:          e.EntityID,
		Name:              e.Name,
		Latitude:          e.Latitude,
		Longitude:         e.Longitude,
		TowerType:         e.TowerType,
		Status:            string(e.Status),
		Height:            e.Height.Ptr(),
		CoverageRadius:    e.CoverageRadius.Ptr(),
		ActiveConnections: e.ActiveConnections,
		MaxConnections:    e.MaxConnections,
		BandwidthUsage:    e.BandwidthUsage.Ptr(),
		SignalStrength:    e.SignalStrength.Ptr(),
		LastReadingAt:     e.LastReadingAt,
	}
}

func telecomTowerToEntity(m *models.TelecomTower) *entities.TelecomTower {
	return &entities.TelecomTower{
		ID:                m.ID,
		EntityID:          m.EntityID,
		Name:              m.Name,
		Latitude:          m.Latitude,
		Longitude:         m.Longitude,
		TowerType:         m.TowerType,
		Status:            entities.InfrastructureStatus(m.Status),
		Height:            null.Float64FromPtr(m.Height),
		CoverageRadius:    null.Float64FromPtr(m.CoverageRadius),
		ActiveConnections: m.ActiveConnections,
		MaxConnections:    m.MaxConnections,
		BandwidthUsage:    null.Float64FromPtr(m.BandwidthUsage),
		SignalStrength:    null.Float64FromPtr(m.SignalStrength),
		LastReadingAt:     m.LastReadingAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// deleteByID soft deletes a row by primary key, shared by asset repositories.
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
