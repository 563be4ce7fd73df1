package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/config"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/middleware"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/models"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/schema"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/scoring"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/services"
)

// @title ChurnSense API
// @version 1.0
// @description API сервиса предсказания оттока клиентов

// @host localhost:8000
// @BasePath /api/v1

// @tag.name churn
// @tag.description Предсказание оттока

// @tag.name monitoring
// @tag.description Мониторинг состояния сервиса

// ChurnHandler обрабатывает HTTP запросы предсказания оттока
type ChurnHandler struct {
	predictionService *services.PredictionService
	historyService    *services.HistoryService
	store             *schema.Store
	cfg               *config.Config
	dbConnected       bool
}

// NewChurnHandler создает новый обработчик.
// historyService может быть nil, если БД недоступна.
func NewChurnHandler(
	predictionService *services.PredictionService,
	historyService *services.HistoryService,
	store *schema.Store,
	cfg *config.Config,
) *ChurnHandler {
	return &ChurnHandler{
		predictionService: predictionService,
		historyService:    historyService,
		store:             store,
		cfg:               cfg,
		dbConnected:       historyService != nil,
	}
}

// SetupRoutes настраивает маршруты REST API
func (h *ChurnHandler) SetupRoutes() *gin.Engine {
	gin.SetMode(h.cfg.Server.Mode)
	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	api := r.Group("/api/v1")

	churn := api.Group("/churn")
	if h.cfg.Auth.JWTSecret != "" {
		jwtMiddleware := middleware.NewJWTMiddleware(h.cfg.Auth.JWTSecret)
		churn.Use(jwtMiddleware.RequireAuth())
	}
	{
		churn.POST("/predict", h.Predict)
		churn.GET("/schema", h.Schema)
		churn.GET("/history", h.History)
	}

	monitoring := api.Group("/monitoring")
	{
		monitoring.GET("/health", h.Health)
	}

	return r
}

// Predict выполняет батчевое предсказание оттока
// @Summary Предсказание оттока для батча клиентов
// @Description Принимает упорядоченный батч сырых записей и возвращает по одному результату на запись в том же порядке. Ошибки отдельных записей не прерывают батч.
// @Tags churn
// @Accept json
// @Produce json
// @Param request body []models.RawRecord true "Батч записей клиентов"
// @Success 200 {object} models.PredictResponse "Результаты предсказания"
// @Failure 400 {object} models.ErrorResponse "Неверный запрос"
// @Failure 502 {object} models.ErrorResponse "Модельный сервис недоступен"
// @Router /churn/predict [post]
func (h *ChurnHandler) Predict(c *gin.Context) {
	var records []models.RawRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Details: err.Error(),
		})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "empty batch",
		})
		return
	}

	if len(records) > h.cfg.Pipeline.MaxBatchSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "batch too large",
			Details: "max " + strconv.Itoa(h.cfg.Pipeline.MaxBatchSize) + " records per call",
		})
		return
	}

	response, err := h.predictionService.PredictBatch(c.Request.Context(), records)
	if err != nil {
		var scoringErr *scoring.Error
		if errors.As(err, &scoringErr) {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "model backend error",
				Details: scoringErr.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "prediction error",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Schema возвращает сведения о замороженной схеме модели
// @Summary Информация о схеме признаков
// @Description Возвращает версию модели, размер вектора признаков и обязательные поля записи
// @Tags churn
// @Produce json
// @Success 200 {object} models.SchemaResponse "Схема модели"
// @Router /churn/schema [get]
func (h *ChurnHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, models.SchemaResponse{
		ModelVersion:   h.store.ModelVersion,
		FeatureCount:   len(h.store.FeatureColumns),
		RequiredFields: h.store.RequiredFields(),
	})
}

// History возвращает последние сохраненные батчи предсказаний
// @Summary История предсказаний
// @Description Возвращает последние батчи из базы данных
// @Tags churn
// @Produce json
// @Param limit query int false "Максимум батчей" default(20)
// @Success 200 {array} models.PredictionBatch "Список батчей"
// @Failure 503 {object} models.ErrorResponse "База данных недоступна"
// @Router /churn/history [get]
func (h *ChurnHandler) History(c *gin.Context) {
	if h.historyService == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: "history storage is not available",
		})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	batches, err := h.historyService.RecentBatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "history error",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, batches)
}

// Health проверяет состояние сервиса
// @Summary Проверка состояния сервиса
// @Description Возвращает статус сервиса, версию модели и состояние БД
// @Tags monitoring
// @Produce json
// @Success 200 {object} models.HealthResponse "Сервис работает"
// @Router /monitoring/health [get]
func (h *ChurnHandler) Health(c *gin.Context) {
	dbStatus := "disabled"
	if h.dbConnected {
		dbStatus = "connected"
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:       "healthy",
		Service:      "churn-service",
		ModelVersion: h.store.ModelVersion,
		Database:     dbStatus,
		Timestamp:    time.Now().UTC(),
	})
}
