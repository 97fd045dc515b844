package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yushu/bookadmin/internal/infrastructure/config"
	"github.com/yushu/bookadmin/pkg/metrics"
	"github.com/yushu/bookadmin/pkg/mq"
)

// worker 库存事件消费进程
// 订阅API进程发布的borrow.*和stock.*事件,输出审计日志。
// 通知推送、报表统计等下游都可以挂在同一个Exchange上,
// 互不影响,也不拖慢主流程的借还事务
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if !cfg.MQ.Enabled {
		log.Fatal("MQ未启用,worker无事可做(请设置mq.enabled=true)")
	}

	metrics.InitMetrics()

	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		cfg.MQ.Exchange,
		"topic",
		"bookadmin.audit",
		[]string{"borrow.*", "stock.*"},
	)
	if err != nil {
		log.Fatalf("创建消费者失败: %v", err)
	}
	defer consumer.Close()

	// Ctrl+C / kill 优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("✓ 库存事件worker已启动")

	if err := consumer.Consume(ctx, handleEvent); err != nil {
		log.Fatalf("消费失败: %v", err)
	}
}

// stockEvent 各事件共有的字段,审计日志只关心这些
type stockEvent struct {
	BorrowID uint `json:"borrow_id"`
	RecordID uint `json:"record_id"`
	BookID   uint `json:"book_id"`
	UserID   uint `json:"user_id"`
	AdminID  uint `json:"admin_id"`
	Quantity int  `json:"quantity"`
	Stock    int  `json:"stock"`
}

func handleEvent(body []byte) error {
	var event stockEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// 格式不对的消息重新入队也救不回来,记日志后丢弃
		log.Printf("事件格式错误,丢弃: %s", string(body))
		return nil
	}

	if metrics.MessagesConsumedTotal != nil {
		metrics.MessagesConsumedTotal.WithLabelValues("bookadmin.audit", "success").Inc()
	}

	log.Printf("[audit] book=%d stock=%d borrow=%d record=%d user=%d admin=%d quantity=%d",
		event.BookID, event.Stock, event.BorrowID, event.RecordID,
		event.UserID, event.AdminID, event.Quantity)
	return nil
}
