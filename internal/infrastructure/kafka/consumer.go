// Package kafka contiene el consumidor de eventos de movimiento.
// El commit de offsets es manual y posterior al procesamiento: entrega
// at-least-once, el motor tolera el reintento (los duplicados se rechazan).
package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/tu-usuario/warehouse-sync/internal/application/ingest"
	"github.com/tu-usuario/warehouse-sync/internal/domain"
	"github.com/tu-usuario/warehouse-sync/internal/domain/entity"
	"github.com/tu-usuario/warehouse-sync/internal/domain/event"
	"github.com/tu-usuario/warehouse-sync/pkg/config"
	"github.com/tu-usuario/warehouse-sync/pkg/logger"
)

// EventProcessor es lo que el consumidor necesita del motor de conciliación.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, evt event.MovementEvent) (*entity.Movement, error)
}

// NewReader crea el lector del tópico de movimientos con grupo de consumidores.
func NewReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		StartOffset: kafka.FirstOffset,
	})
}

// Backoff de reintento ante fallos de infraestructura.
const (
	initialRetryBackoff = time.Second
	maxRetryBackoff     = 30 * time.Second
)

// Consumer lee sobres del tópico y los entrega al procesador.
type Consumer struct {
	reader    *kafka.Reader
	processor EventProcessor
	log       *logger.Logger
	backoff   time.Duration
}

// NewConsumer construye el consumidor.
func NewConsumer(reader *kafka.Reader, processor EventProcessor, log *logger.Logger) *Consumer {
	return &Consumer{reader: reader, processor: processor, log: log, backoff: initialRetryBackoff}
}

// Run es el bucle principal. Política de offsets:
//   - mensaje inválido o rechazo de negocio: se registra y se commitea
//     (reintentar no lo va a arreglar);
//   - fallo de infraestructura: se reintenta el MISMO mensaje con backoff y no
//     se avanza; commitear uno posterior movería el offset del grupo por encima
//     del fallido y lo perdería sin reinicio del proceso.
//
// Devuelve nil cuando el contexto se cancela.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info().Str("topic", c.reader.Config().Topic).Msg("consumidor de Kafka iniciado")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.log.Info().Msg("contexto cancelado, cerrando bucle de consumo")
				return nil
			}
			return err
		}

		if err := c.process(ctx, msg.Offset, msg.Value); err != nil {
			// Contexto cancelado durante el reintento
			return nil
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error().Err(err).Int64("offset", msg.Offset).Msg("fallo al commitear offset")
		}
	}
}

// process entrega el mensaje al motor hasta resolverlo: procesado o descartado
// por rechazo definitivo. Los fallos de infraestructura se reintentan con
// backoff exponencial sin soltar el mensaje. Solo devuelve error si el contexto
// se cancela durante la espera.
func (c *Consumer) process(ctx context.Context, offset int64, raw []byte) error {
	wait := c.backoff
	for {
		err := c.handle(ctx, raw)
		if err == nil {
			return nil
		}
		if isBusinessRejection(err) {
			c.log.Warn().Err(err).Int64("offset", offset).Msg("evento rechazado, se descarta")
			return nil
		}

		c.log.Error().Err(err).
			Int64("offset", offset).
			Dur("espera", wait).
			Msg("fallo de procesamiento, se reintenta el mismo mensaje")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		if wait *= 2; wait > maxRetryBackoff {
			wait = maxRetryBackoff
		}
	}
}

// Close cierra el lector subyacente.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) handle(ctx context.Context, raw []byte) error {
	env, err := ingest.ParseEnvelope(raw)
	if err != nil {
		return err
	}
	evt, err := ingest.Normalize(env)
	if err != nil {
		return err
	}
	_, err = c.processor.ProcessEvent(ctx, evt)
	return err
}

// isBusinessRejection distingue los rechazos definitivos (datos malos, reglas
// de negocio) de los fallos transitorios de infraestructura.
func isBusinessRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidEvent) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrNegativeInitialStock) ||
		errors.Is(err, domain.ErrInvalidMovementState)
}
