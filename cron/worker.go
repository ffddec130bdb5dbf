package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"healthguard/config"
	"healthguard/services/reminder"
	"healthguard/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(reminderSvc reminder.ReminderService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEvaluateReminders, handleEvaluateTask(reminderSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// InitReminderScheduler enqueues a reminder:evaluate task on a fixed
// interval so due schedules are swept even when nothing else touches them.
func InitReminderScheduler() {
	intervalMin := 1
	if config.AppConfig != nil && config.AppConfig.ReminderEvalIntervalMin > 0 {
		intervalMin = config.AppConfig.ReminderEvalIntervalMin
	}

	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{})

	task, err := tasks.NewEvaluateTask()
	if err != nil {
		log.Printf("[ReminderScheduler] ❌ Failed to build evaluate task: %v", err)
		return
	}
	cronspec := fmt.Sprintf("@every %dm", intervalMin)
	if _, err := scheduler.Register(cronspec, task); err != nil {
		log.Printf("[ReminderScheduler] ❌ Failed to register periodic task: %v", err)
		return
	}

	go func() {
		log.Printf("[ReminderScheduler] ⏰ Sweeping due reminders every %dm", intervalMin)
		if err := scheduler.Run(); err != nil {
			log.Printf("[ReminderScheduler] ❌ Scheduler stopped: %v", err)
		}
	}()
}

func handleEvaluateTask(reminderSvc reminder.ReminderService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		summary := reminderSvc.EvaluateDue(ctx)
		log.Printf("[ReminderWorker] ⏰ Sweep done: %d evaluated, %d fired, %d failed",
			summary.Evaluated, summary.Fired, summary.Failed)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
