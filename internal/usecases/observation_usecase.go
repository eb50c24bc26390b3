package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hazhaz1412/smart-city-iot/internal/domain/entities"
	"github.com/Hazhaz1412/smart-city-iot/internal/domain/repositories"
	"github.com/Hazhaz1412/smart-city-iot/pkg/utils"
)

// ObservationUsecase serves read access to stored weather and air quality
// observations.
type ObservationUsecase struct {
	weatherObsRepo repositories.WeatherObservationRepository
	airObsRepo     repositories.AirQualityObservationRepository
}

func NewObservationUsecase(
	weatherObsRepo repositories.WeatherObservationRepository,
	airObsRepo repositories.AirQualityObservationRepository,
) *ObservationUsecase {
	return &ObservationUsecase{
		weatherObsRepo: weatherObsRepo,
		airObsRepo:     airObsRepo,
	}
}

func (u *ObservationUsecase) GetWeatherObservation(ctx context.Context, id uuid.UUID) (*entities.WeatherObservation, error) {
	return u.weatherObsRepo.FindByID(ctx, id)
}

func (u *ObservationUsecase) ListRecentWeather(ctx context.Context, p utils.PaginationParams) ([]*entities.WeatherObservation, int64, error) {
	return u.weatherObsRepo.ListRecent(ctx, p)
}

func (u *ObservationUsecase) ListWeatherByStation(ctx context.Context, stationID uuid.UUID, p utils.PaginationParams) ([]*entities.WeatherObservation, int64, error) {
	return u.weatherObsRepo.ListByStation(ctx, stationID, p)
}

func (u *ObservationUsecase) GetAirQualityObservation(ctx context.Context, id uuid.UUID) (*entities.AirQualityObservation, error) {
	return u.airObsRepo.FindByID(ctx, id)
}

func (u *ObservationUsecase) ListRecentAirQuality(ctx context.Context, p utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error) {
	return u.airObsRepo.ListRecent(ctx, p)
}

func (u *ObservationUsecase) ListAirQualityBySensor(ctx context.Context, sensorID uuid.UUID, p utils.PaginationParams) ([]*entities.AirQualityObservation, int64, error) {
	return u.airObsRepo.ListBySensor(ctx, sensorID, p)
}
