package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	emailService "github.com/aaravmahajanofficial/storefront-api/pkg/sendgrid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

var _ emailService.EmailService = (*EmailService)(nil)

func NewEmailService(t interface {
	mock.TestingT
	Cleanup(func())
},
) *EmailService {
	m := &EmailService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *EmailService) GetSendGridClient() *sendgrid.Client {
	client, _ := m.Called().Get(0).(*sendgrid.Client)

	return client
}
