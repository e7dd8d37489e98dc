package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"slotwise/config"
	bookingRepo "slotwise/database/repository/booking"
	providerRepo "slotwise/database/repository/provider"
	userRepo "slotwise/database/repository/user"
	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// ReminderWorkerDeps are the collaborators the reminder worker needs to turn
// a queued task back into a delivered notification.
type ReminderWorkerDeps struct {
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Users     userRepo.UserRepository
	Notifier  notification.NotificationService
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(deps ReminderWorkerDeps) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(deps))

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(deps ReminderWorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		b, err := deps.Bookings.GetByID(p.BookingID)
		if err != nil {
			log.Printf("[ReminderHandler] ⚠️ Booking %s no longer exists: %v", p.BookingID, err)
			return nil
		}
		// Cancelled between scheduling and firing; nothing to remind about.
		if b.Status != models.BookingStatusConfirmed {
			return nil
		}

		provider, err := deps.Providers.GetByID(b.ProviderID)
		if err != nil {
			log.Printf("[ReminderHandler] ⚠️ Provider %s missing for booking %s: %v", b.ProviderID, b.ID, err)
			return nil
		}

		data := models.NotificationData{
			ProviderName: provider.Name,
			MeetingLink:  b.MeetingLink,
		}
		local := b.StartUTC
		if loc, tzErr := time.LoadLocation(provider.Timezone); tzErr == nil {
			local = b.StartUTC.In(loc)
		}
		data.Date = local.Format("2006-01-02")
		data.Time = local.Format("15:04")

		log.Printf("[ReminderHandler] ⏰ Sending session reminder for booking %s", b.ID)

		if provider.EmailOptIn {
			rcpt := notification.Recipient{Email: provider.Email, Name: provider.Name, FCMToken: provider.FCMToken}
			if err := deps.Notifier.Notify(ctx, models.NotifySessionReminder, rcpt, data); err != nil {
				log.Printf("[ReminderHandler] ❌ Failed to remind provider %s: %v", provider.ID, err)
			}
		}

		booker, err := deps.Users.GetByID(b.BookerID)
		if err != nil || booker == nil {
			return nil
		}
		if booker.EmailOptIn {
			data.BookerName = booker.Name
			rcpt := notification.Recipient{Email: booker.Email, Name: booker.Name, FCMToken: booker.FCMToken}
			if err := deps.Notifier.Notify(ctx, models.NotifySessionReminder, rcpt, data); err != nil {
				log.Printf("[ReminderHandler] ❌ Failed to remind booker %s: %v", booker.ID, err)
			}
		}
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
