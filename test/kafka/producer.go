// этот код не зависит от приложения,
// и нужен только для ручной проверки перезагрузки заказов по уведомлению из кафки
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// orderChanged повторяет формат уведомления, который ждёт консьюмер
type orderChanged struct {
	Source    string    `json:"source"`
	OrderID   string    `json:"order_id,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

func main() {
	// значения по умолчанию совпадают с config/config.yaml
	brokerAddress := flag.String("broker", "localhost:9092", "kafka broker address")
	topic := flag.String("topic", "orders-changed", "kafka topic")
	orderID := flag.String("order", "", "id of the changed order")
	flag.Parse()

	message, err := json.Marshal(orderChanged{
		Source:    "manual-test",
		OrderID:   *orderID,
		ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Fatalf("Failed to marshal message: %v", err)
	}

	// настройки писателя (producer-а)
	writer := &kafka.Writer{
		Addr:     kafka.TCP(*brokerAddress),
		Topic:    *topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer writer.Close()

	log.Println("Sending message to Kafka...")
	err = writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(*orderID),
			Value: message,
		},
	)
	if err != nil {
		log.Fatalf("Failed to write message: %v", err)
	}
	fmt.Println("Message sent successfully!")
}
