package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registered for image.Decode
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/nfnt/resize"
	"github.com/redis/go-redis/v9"

	"github.com/devranvijay/PropertyPro/internal/config"
	"github.com/devranvijay/PropertyPro/internal/email"
	"github.com/devranvijay/PropertyPro/internal/storage"
)

// Task types handled by the background worker.
const (
	TypeEmailDelivery = "email:deliver"
	TypeImageProcess  = "image:process"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg         *config.Config
	emailSender email.Sender
	s3Storage   storage.IS3Storage // nil when no S3 mirror is configured
}

func NewTaskProcessor(cfg *config.Config, emailSender email.Sender, s3Storage storage.IS3Storage) *TaskProcessor {
	return &TaskProcessor{
		cfg:         cfg,
		emailSender: emailSender,
		s3Storage:   s3Storage,
	}
}

// SetupServer configures an Asynq server with all task handlers. The
// caller runs it with srv.Run(mux) and stops it with srv.Shutdown().
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
				"images":  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Payload: %s, Error: %v", task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailDelivery, processor.HandleEmailDeliveryTask)
	mux.HandleFunc(TypeImageProcess, processor.HandleImageProcessTask)
	log.Println("Registered background task handlers.")

	return srv, mux
}

// --- Task Handlers ---

// EmailTaskPayload defines the data for an email delivery task. Subject
// and body arrive pre-rendered; the handler only adds headers.
type EmailTaskPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewEmailDeliveryTask builds an asynq task for the default queue.
func NewEmailDeliveryTask(to, subject, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailTaskPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email task payload: %w", err)
	}
	return asynq.NewTask(TypeEmailDelivery, payload, asynq.MaxRetry(5)), nil
}

// HandleEmailDeliveryTask builds the raw message and hands it to the
// configured sender. Send failures are returned so asynq retries them.
func (p *TaskProcessor) HandleEmailDeliveryTask(ctx context.Context, t *asynq.Task) error {
	var payload EmailTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal email task payload: %v: %w", err, asynq.SkipRetry)
	}

	fromAddress := p.cfg.SmtpFromAddress
	if fromAddress == "" {
		fromAddress = "noreply@example.com"
		log.Printf("Warning: SmtpFromAddress not configured, using fallback %s for email to %s", fromAddress, payload.To)
	}

	// Basic email structure with essential headers.
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("To: %s\r\n", payload.To))
	sb.WriteString(fmt.Sprintf("From: %s\r\n", fromAddress))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", payload.Subject))
	sb.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(payload.Body)
	sb.WriteString("\r\n")

	if err := p.emailSender.Send(ctx, []string{payload.To}, payload.Subject, []byte(sb.String())); err != nil {
		log.Printf("Email sending failed: %v", err)
		return err
	}

	log.Printf("Email task processed successfully: To=%s, Subject=%s", payload.To, payload.Subject)
	return nil
}

// ImageTaskPayload defines the data for an image normalization task.
type ImageTaskPayload struct {
	Path string `json:"path"` // On-disk path of the uploaded image
}

// NewImageProcessTask builds an asynq task for the images queue.
func NewImageProcessTask(path string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageTaskPayload{Path: path})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image task payload: %w", err)
	}
	return asynq.NewTask(TypeImageProcess, payload, asynq.Queue("images")), nil
}

// HandleImageProcessTask normalizes an uploaded listing image: images
// larger than the configured maximum dimension are downscaled and
// re-encoded as JPEG in place, and the result is mirrored to S3 when a
// mirror is configured. The file keeps its original name so stored URLs
// stay valid.
func (p *TaskProcessor) HandleImageProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ImageTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image task payload: %v: %w", err, asynq.SkipRetry)
	}

	imgData, err := os.ReadFile(payload.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Image %s no longer exists, skipping.", payload.Path)
			return fmt.Errorf("image file not found: %w", asynq.SkipRetry)
		}
		return fmt.Errorf("failed to read image %s: %w", payload.Path, err)
	}

	img, format, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		log.Printf("Error decoding image %s: %v", payload.Path, err)
		return fmt.Errorf("unsupported image format or corrupt image: %w", asynq.SkipRetry)
	}

	maxDim := uint(p.cfg.ImageMaxDimension)
	needsResize := uint(img.Bounds().Dx()) > maxDim || uint(img.Bounds().Dy()) > maxDim

	processedData := imgData
	contentType := "image/" + format

	if needsResize {
		log.Printf("Resizing image %s (original: %dx%d, max: %d)", payload.Path, img.Bounds().Dx(), img.Bounds().Dy(), maxDim)
		resizedImg := resize.Thumbnail(maxDim, maxDim, img, resize.Lanczos3)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: 85}); err != nil {
			return fmt.Errorf("failed to re-encode resized image: %w", err)
		}
		processedData = buf.Bytes()
		contentType = "image/jpeg"

		if err := os.WriteFile(payload.Path, processedData, 0644); err != nil {
			return fmt.Errorf("failed to write processed image %s: %w", payload.Path, err)
		}
		log.Printf("Resized image %s to %dx%d", payload.Path, resizedImg.Bounds().Dx(), resizedImg.Bounds().Dy())
	}

	if p.s3Storage != nil {
		key := "uploads/" + filepath.Base(payload.Path)
		url, err := p.s3Storage.PutImage(ctx, key, contentType, processedData)
		if err != nil {
			// The local copy is authoritative; mirror failures retry.
			return fmt.Errorf("failed to mirror image to S3: %w", err)
		}
		log.Printf("Mirrored image %s to %s", payload.Path, url)
	}

	log.Printf("Image task processed successfully: Path=%s", payload.Path)
	return nil
}
