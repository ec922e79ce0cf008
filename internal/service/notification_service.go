package service

import (
	"context"
	"encoding/json"
	"fmt"

	"darely/internal/models"
	"darely/internal/repository"
)

type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	fcm      *FCMService
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, fcm *FCMService) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, fcm: fcm}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	s.sendPush(userID, notifType, title, body, data)
	return nil
}

func (s *NotificationService) sendPush(userID uint, notifType, title, body string, data map[string]interface{}) {
	if s.fcm == nil || s.userRepo == nil {
		return
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil || u == nil || u.FCMToken == "" {
		return
	}
	_ = s.fcm.SendToUser(context.Background(), u.FCMToken, notifType, title, body, data)
}

// NotifyPaidRequest tells the creator a fan paid for a truth/dare; it is
// waiting on their queue.
func (s *NotificationService) NotifyPaidRequest(creatorID, requestID uint, fanName, kind string, amountCents int64) error {
	return s.Notify(creatorID, "PAID_REQUEST", "Paid request",
		fmt.Sprintf("%s paid $%.2f for %s", fanName, float64(amountCents)/100, kind),
		map[string]interface{}{"request_id": requestID, "amount_cents": amountCents})
}

func (s *NotificationService) NotifyTip(creatorID, requestID uint, fanName string, amountCents int64) error {
	return s.Notify(creatorID, "TIP_RECEIVED", "Tip received",
		fmt.Sprintf("%s tipped $%.2f", fanName, float64(amountCents)/100),
		map[string]interface{}{"request_id": requestID, "amount_cents": amountCents})
}

func (s *NotificationService) NotifyActivated(fanID uint, creatorName string, requestID uint) error {
	return s.Notify(fanID, "REQUEST_ACTIVATED", "Request on screen",
		creatorName+" picked your request", map[string]interface{}{"request_id": requestID})
}

func (s *NotificationService) NotifyCompleted(fanID uint, creatorName string, requestID uint) error {
	return s.Notify(fanID, "REQUEST_COMPLETED", "Request done",
		creatorName+" completed your request", map[string]interface{}{"request_id": requestID})
}

func (s *NotificationService) NotifyRejected(fanID uint, creatorName string, requestID uint) error {
	return s.Notify(fanID, "REQUEST_REJECTED", "Request declined",
		creatorName+" declined your request", map[string]interface{}{"request_id": requestID})
}

func (s *NotificationService) NotifyDepositConfirmed(userID uint, amountCents int64, reference string) error {
	return s.Notify(userID, "DEPOSIT_CONFIRMED", "Deposit confirmed", "Your wallet top-up was successful.",
		map[string]interface{}{"amount_cents": amountCents, "reference": reference})
}

func (s *NotificationService) NotifyPayout(userID uint, amountCents int64, status string) error {
	return s.Notify(userID, "PAYOUT_"+status, "Payout "+status,
		fmt.Sprintf("Your payout of $%.2f is %s", float64(amountCents)/100, status),
		map[string]interface{}{"amount_cents": amountCents})
}
