// Пакет media — клиент медиахостинга Cloudinary. Подтверждения оплаты
// загружаются под детерминированным именем, чтобы повторная отправка того
// же чека перезаписывала файл, а не плодила копии.
package media

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"jokibot/internal/constants"
)

// Uploader — интерфейс медиахостинга, который видят обработчики.
type Uploader interface {
	// Upload загружает бинарный файл под именем fileName и возвращает
	// публичный URL загруженного файла.
	Upload(fileName string, data []byte) (string, error)
}

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// CloudinaryClient выполняет подписанную загрузку через upload API.
type CloudinaryClient struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
}

// NewCloudinaryClient создает клиент медиахостинга.
func NewCloudinaryClient(cloudName, apiKey, apiSecret string) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// uploadResponse — интересующая нас часть ответа upload API.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload загружает файл в папку подтверждений оплаты.
func (c *CloudinaryClient) Upload(fileName string, data []byte) (string, error) {
	if c.cloudName == "" || c.apiKey == "" || c.apiSecret == "" {
		return "", fmt.Errorf("клиент Cloudinary не сконфигурирован")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	// Подпись: отсортированные по ключу параметры запроса + api_secret.
	signature := c.sign(fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s",
		constants.MEDIA_FOLDER, fileName, timestamp))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("не удалось подготовить multipart-форму: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("не удалось записать файл в форму: %w", err)
	}
	_ = writer.WriteField("api_key", c.apiKey)
	_ = writer.WriteField("timestamp", timestamp)
	_ = writer.WriteField("public_id", fileName)
	_ = writer.WriteField("folder", constants.MEDIA_FOLDER)
	_ = writer.WriteField("signature", signature)
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("не удалось завершить multipart-форму: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequest(http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("не удалось создать запрос к Cloudinary: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса к Cloudinary: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("не удалось прочитать ответ Cloudinary: %w", err)
	}

	var result uploadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("не удалось разобрать ответ Cloudinary (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || result.SecureURL == "" {
		return "", fmt.Errorf("Cloudinary отклонил загрузку '%s' (%d): %s", fileName, resp.StatusCode, result.Error.Message)
	}

	log.Printf("CloudinaryClient.Upload: файл '%s' загружен: %s", result.PublicID, result.SecureURL)
	return result.SecureURL, nil
}

func (c *CloudinaryClient) sign(params string) string {
	sum := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
