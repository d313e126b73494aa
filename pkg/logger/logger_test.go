package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockio-api/pkg/logger"
)

// Cada línea en production lleva el campo service para distinguir el origen
// cuando varios servicios escriben al mismo agregador.
func TestNew_EstampaServiceEnCadaLinea(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:     "production",
		Level:   "info",
		Service: "stockio-api",
		Out:     &buf,
	})

	log.Info().Str("op", "arranque").Msg("listo")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "stockio-api", line["service"])
	assert.Equal(t, "arranque", line["op"])
	assert.Equal(t, "listo", line["message"])
}

// Por debajo del nivel configurado no se escribe nada.
func TestNew_RespetaElNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:   "production",
		Level: "warn",
		Out:   &buf,
	})

	log.Info().Msg("ruido")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("esto sí")
	assert.NotZero(t, buf.Len())
}
