package markets

import (
	"net/http"
	"time"

	"predictive-hub-backend/db"
	"predictive-hub-backend/models"
	"predictive-hub-backend/utils"

	"github.com/gin-gonic/gin"
)

type sectorSummary struct {
	Sector       models.MarketSector     `json:"sector"`
	RequiredRole models.Role             `json:"requiredRole"`
	Latest       *models.MarketDataPoint `json:"latest,omitempty"`
}

// @Summary List market sectors
// @Description Return every sector with its latest headline metric and the tier required to read it
// @Tags markets
// @Produce json
// @Success 200 {array} sectorSummary
// @Router /markets [get]
func GetSectors(c *gin.Context) {
	summaries := make([]sectorSummary, 0, len(models.Sectors))

	for _, sector := range models.Sectors {
		summary := sectorSummary{
			Sector:       sector,
			RequiredRole: models.SectorRequiredRole(sector),
		}

		var latest models.MarketDataPoint
		if err := db.DB.Where("sector = ?", sector).Order("recorded_at DESC").First(&latest).Error; err == nil {
			summary.Latest = &latest
		}

		summaries = append(summaries, summary)
	}

	c.JSON(http.StatusOK, summaries)
}

// @Summary Get a sector's data points
// @Description Return the data points of a sector, most recent first. Premium sectors require the investor tier, other sectors the pro tier.
// @Tags markets
// @Produce json
// @Param sector path string true "Sector name"
// @Security BearerAuth
// @Success 200 {array} models.MarketDataPoint
// @Failure 400 {object} map[string]string "error: Unknown sector"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Upgrade required"
// @Router /markets/{sector} [get]
func GetSectorData(c *gin.Context) {
	sectorParam := c.Param("sector")
	if !models.ValidSector(sectorParam) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sector"})
		return
	}
	sector := models.MarketSector(sectorParam)

	roleClaim, exists := c.Get("role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	roleStr, _ := roleClaim.(string)

	required := models.SectorRequiredRole(sector)
	if !models.CanAccess(models.Role(roleStr), required) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: upgrade required"})
		return
	}

	var points []models.MarketDataPoint
	if err := db.DB.Where("sector = ?", sector).Order("recorded_at DESC").Find(&points).Error; err != nil {
		utils.LogError(err, "Error fetching data points in GetSectorData")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching market data"})
		return
	}

	c.JSON(http.StatusOK, points)
}

// @Summary Ingest a market data point
// @Description Record a new data point for a sector
// @Tags markets
// @Accept json
// @Produce json
// @Param sector path string true "Sector name"
// @Param point body models.MarketDataPointCreate true "Data point"
// @Security BearerAuth
// @Success 201 {object} models.MarketDataPoint
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /markets/{sector} [post]
func CreateDataPoint(c *gin.Context) {
	sectorParam := c.Param("sector")
	if !models.ValidSector(sectorParam) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sector"})
		return
	}

	var input models.MarketDataPointCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	recordedAt := input.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	point := models.MarketDataPoint{
		Sector:     models.MarketSector(sectorParam),
		MetricName: input.MetricName,
		Value:      input.Value,
		Unit:       input.Unit,
		Source:     input.Source,
		RecordedAt: recordedAt,
	}

	if err := db.DB.Create(&point).Error; err != nil {
		utils.LogError(err, "Error creating data point in CreateDataPoint")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the data point"})
		return
	}

	c.JSON(http.StatusCreated, point)
}
