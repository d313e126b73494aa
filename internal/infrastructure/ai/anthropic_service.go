package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa VisionService.
var _ ports.VisionService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	shelfSystemPrompt = `Eres un asistente de inventario para restaurantes y bodegas.
Recibes una foto de una estantería o anaquel y debes identificar los artículos visibles.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código` + " ```json" + `) con esta estructura exacta:
{
  "items": [
    {"name": "<nombre corto del artículo en español>", "quantity": <entero: unidades visibles estimadas>, "confidence": <decimal entre 0.0 y 1.0>}
  ]
}

Reglas:
- Un elemento por tipo de artículo, no por unidad física.
- quantity: estimación entera de unidades visibles; usa 1 si no puedes contar.
- confidence: 0.9–1.0 = identificación segura, 0.7–0.89 = probable, <0.7 = dudosa.
- Si la imagen no muestra artículos de inventario, devuelve {"items": []}.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`

	invoiceSystemPrompt = `Eres un asistente de compras que digitaliza facturas de proveedores.
Recibes la foto de una factura y debes extraer el proveedor y las líneas de detalle.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código` + " ```json" + `) con esta estructura exacta:
{
  "vendor_name": "<razón social del proveedor, o cadena vacía si no es legible>",
  "lines": [
    {"name": "<descripción de la línea>", "quantity": <entero>, "unit_cost": <número decimal>}
  ]
}

Reglas:
- Ignora subtotales, impuestos y totales; solo líneas de producto.
- quantity: entero; si la factura muestra fracciones, redondea hacia arriba.
- unit_cost: costo unitario en la moneda de la factura; usa 0 si no es legible.
- Si la imagen no es una factura, devuelve {"vendor_name": "", "lines": []}.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`
)

// AnthropicService adaptador que implementa VisionService usando la API REST de
// Anthropic (Claude). Usa net/http de la librería estándar de Go; no requiere
// el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 30 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string                  `json:"role"`
	Content []anthropicContentBlock `json:"content"`
}

// anthropicContentBlock bloque de contenido multimodal: texto o imagen base64.
type anthropicContentBlock struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"` // siempre "base64"
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque Claude lo envuelva en markdown.
// Captura desde el primer '{' hasta el último '}' coincidente.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

type shelfPayload struct {
	Items []struct {
		Name       string  `json:"name"`
		Quantity   int     `json:"quantity"`
		Confidence float64 `json:"confidence"`
	} `json:"items"`
}

// DetectItems envía la foto de estantería a Claude y devuelve los artículos detectados.
func (s *AnthropicService) DetectItems(ctx context.Context, imageBase64, mediaType string) ([]dto.DetectedItemDTO, error) {
	rawText, err := s.callVision(ctx, shelfSystemPrompt, imageBase64, mediaType)
	if err != nil {
		return nil, err
	}

	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}

	var payload shelfPayload
	if err := json.Unmarshal([]byte(cleanJSON), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de detección: %w (JSON extraído: %s)", err, cleanJSON)
	}

	items := make([]dto.DetectedItemDTO, 0, len(payload.Items))
	for _, it := range payload.Items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		conf := it.Confidence
		if conf < 0 {
			conf = 0
		} else if conf > 1 {
			conf = 1
		}
		items = append(items, dto.DetectedItemDTO{
			Name:       strings.TrimSpace(it.Name),
			Quantity:   qty,
			Confidence: conf,
		})
	}
	return items, nil
}

type invoicePayload struct {
	VendorName string `json:"vendor_name"`
	Lines      []struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		UnitCost float64 `json:"unit_cost"`
	} `json:"lines"`
}

// ExtractInvoice hace OCR de una factura y devuelve proveedor y líneas.
func (s *AnthropicService) ExtractInvoice(ctx context.Context, imageBase64, mediaType string) (*dto.InvoiceScanResult, error) {
	rawText, err := s.callVision(ctx, invoiceSystemPrompt, imageBase64, mediaType)
	if err != nil {
		return nil, err
	}

	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}

	var payload invoicePayload
	if err := json.Unmarshal([]byte(cleanJSON), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de factura: %w (JSON extraído: %s)", err, cleanJSON)
	}

	result := &dto.InvoiceScanResult{
		VendorName: strings.TrimSpace(payload.VendorName),
		Lines:      make([]dto.InvoiceLineDTO, 0, len(payload.Lines)),
	}
	for _, ln := range payload.Lines {
		if strings.TrimSpace(ln.Name) == "" {
			continue
		}
		qty := ln.Quantity
		if qty < 1 {
			qty = 1
		}
		cost := ln.UnitCost
		if cost < 0 {
			cost = 0
		}
		result.Lines = append(result.Lines, dto.InvoiceLineDTO{
			Name:     strings.TrimSpace(ln.Name),
			Quantity: qty,
			UnitCost: decimal.NewFromFloat(cost),
		})
	}
	return result, nil
}

// callVision arma un mensaje multimodal (imagen + instrucción) y devuelve el
// texto crudo de la primera respuesta de Claude.
func (s *AnthropicService) callVision(ctx context.Context, systemPrompt, imageBase64, mediaType string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	if strings.TrimSpace(imageBase64) == "" {
		return "", fmt.Errorf("AI: imagen vacía")
	}
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 2048,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{
				Role: "user",
				Content: []anthropicContentBlock{
					{
						Type: "image",
						Source: &anthropicImageSource{
							Type:      "base64",
							MediaType: mediaType,
							Data:      imageBase64,
						},
					},
					{Type: "text", Text: "Analiza la imagen y responde con el JSON indicado."},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	// Manejar errores HTTP de la API de Anthropic
	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	if len(anthResp.Content) == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return anthResp.Content[0].Text, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	// Eliminar bloques markdown ```json ... ``` o ``` ... ```
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		// Quitar la línea de apertura (```json o ```)
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		// Quitar el cierre ```
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	// Si el texto resultante ya empieza con '{', usarlo directamente
	if strings.HasPrefix(text, "{") {
		return text
	}

	// Fallback: regex para extraer el primer {...}
	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
