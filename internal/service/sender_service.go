package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"github.com/loicperes14/mobirent/internal/entities"
	"github.com/loicperes14/mobirent/internal/utils"
)

// SenderService delivers booking email and SMS to renters. Delivery runs in
// goroutines and failures are only logged: a missed message never fails the
// booking or payment that triggered it.
type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) BookingConfirmed(booking entities.BookingDetail) {
	s.send(booking, "confirmed")
}

func (s *SenderService) PaymentReceived(booking entities.BookingDetail) {
	s.send(booking, "paid")
}

func (s *SenderService) send(booking entities.BookingDetail, status string) {
	emailData := entities.BookingEmailData{
		UserName:           booking.UserFullName,
		BookingCode:        utils.ShortID(booking.ID),
		CarBrand:           booking.Car.Brand,
		CarModel:           booking.Car.Model,
		StartDateFormatted: booking.StartDate.Format("02 Jan 2006"),
		EndDateFormatted:   booking.EndDate.Format("02 Jan 2006"),
		TotalFormatted:     utils.FormatXAF(booking.TotalPrice),
		Status:             status,
		CurrentYear:        time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your MobiRent booking is %s - Code: %s", status, emailData.BookingCode)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at MobiRent is %s.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Car: %s %s\n"+
			"Pickup: %s\n"+
			"Return: %s\n"+
			"Total: %s\n\n"+
			"Thank you for choosing MobiRent.\n\n"+
			"MobiRent. All rights reserved.",
		emailData.UserName, status, emailData.BookingCode, emailData.CarBrand, emailData.CarModel,
		emailData.StartDateFormatted, emailData.EndDateFormatted, emailData.TotalFormatted,
	)

	htmlBody := plainTextBody
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	if tmpl, err := template.ParseFiles(tmplPath); err != nil {
		log.Printf("ALERT: could not parse booking email template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			log.Printf("ALERT: could not render booking email for %s: %v", emailData.BookingCode, err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("ALERT (async): email for booking %s failed: %v", emailData.BookingCode, err)
		}
	}(booking.UserEmail, emailData.UserName, emailSubject, plainTextBody, htmlBody)

	if booking.UserPhone == "" {
		return
	}
	smsMessage := fmt.Sprintf("MobiRent: Booking %s is %s!\nPickup: %s.\nMore details in your email.",
		emailData.BookingCode, status, emailData.StartDateFormatted)

	go func(phone, message string) {
		if err := SendSMS(phone, message); err != nil {
			log.Printf("ALERT (async): SMS for booking %s to %s failed: %v", emailData.BookingCode, phone, err)
		}
	}(booking.UserPhone, smsMessage)
}
