package crm

import "time"

// DirectionInbound marks messages received from a customer.
const DirectionInbound = "INBOUND"

// Customer is a known contact of the shop.
type Customer struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	Phone        string `gorm:"size:50;index"`
	RegisteredAt time.Time
}

func (Customer) TableName() string { return "customers" }

// Message is one stored WhatsApp message.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  *uint     `gorm:"index" json:"customer_id"`
	Customer    *Customer `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Direction   string    `gorm:"size:20;default:INBOUND" json:"direction"`
	Content     string    `gorm:"type:text" json:"content"`
	ReceivedAt  time.Time `gorm:"index" json:"received_at"`
	Read        bool      `gorm:"default:false" json:"read"`
	WhatsAppID  string    `gorm:"column:whatsapp_id;size:100;uniqueIndex" json:"whatsapp_id"`
	Phone       string    `gorm:"size:50" json:"phone"`
	ProfileName string    `gorm:"size:100" json:"profile_name"`
}

func (Message) TableName() string { return "messages" }
