package apihandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	serviceInfos := make(map[string]interface{})
	infos, err := os.ReadFile("serviceInfos.json")
	if err != nil {
		slog.Debug("Error reading serviceInfos.json", slog.String("error", err.Error()))
	} else {
		err = json.Unmarshal(infos, &serviceInfos)
		if err != nil {
			slog.Debug("Error unmarshalling serviceInfos.json", slog.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"serviceInfos": serviceInfos,
	})
}

type HttpEndpoints struct {
	tokenSignKey          string
	tokenExpiresIn        time.Duration
	serviceTokenSignKey   string
	serviceTokenExpiresIn time.Duration
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	serviceTokenSignKey string,
	serviceTokenExpiresIn time.Duration,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:          tokenSignKey,
		tokenExpiresIn:        tokenExpiresIn,
		serviceTokenSignKey:   serviceTokenSignKey,
		serviceTokenExpiresIn: serviceTokenExpiresIn,
	}
}
