package backendtest

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"masjid-admin/internal/models"
)

func ptr(s string) *string { return &s }

var fixtureDate = models.Timestamp{Time: time.Date(2026, time.October, 10, 9, 30, 0, 0, time.UTC)}

func Members() []models.Member {
	return []models.Member{
		{
			ID: "m-1", AccountNumber: "MM1A2B3C4D", Name: "Abdul Rahman", Phone: "9876543210",
			Email: ptr("abdul@example.org"), Address: "Main Road, Ripponpet",
			IDProofType: models.IDProofAadhar, IDProofNumber: "1234-5678-9012",
			IsCommitteeMember: true, CommitteePosition: ptr("Secretary"),
			CreatedAt: fixtureDate, IsActive: true,
		},
		{
			ID: "m-2", AccountNumber: "MM5E6F7A8B", Name: "Yusuf Khan", Phone: "9123456780",
			Address: "Masjid Street, Ripponpet", IDProofType: models.IDProofPan, IDProofNumber: "ABCDE1234F",
			CreatedAt: fixtureDate, IsActive: true,
		},
	}
}

func Payments() []models.Payment {
	return []models.Payment{
		{
			ID: "p-1", MemberID: "m-1", MemberName: "Abdul Rahman", MemberAccountNumber: "MM1A2B3C4D",
			Amount: decimal.NewFromInt(500), PaymentType: models.PaymentTypeMonthlyChanda, PaymentMethod: "UPI",
			TransactionID: ptr("UPI123456"), ReceiptNumber: "RCP20261010A1B2C3",
			PaymentDate: fixtureDate, MonthYear: ptr("2026-10"), Status: "completed",
		},
		{
			ID: "p-2", MemberID: "m-2", MemberName: "Yusuf Khan", MemberAccountNumber: "MM5E6F7A8B",
			Amount: decimal.RequireFromString("1000.50"), PaymentType: models.PaymentTypeDonation, PaymentMethod: "UPI",
			ReceiptNumber: "RCP20261010D4E5F6", PaymentDate: fixtureDate, Status: "completed",
		},
	}
}

func Stats() models.DashboardStats {
	return models.DashboardStats{
		TotalMembers:       2,
		CommitteeMembers:   1,
		MonthlyCollections: decimal.NewFromInt(500),
		RecentPayments:     Payments(),
	}
}

func Prayers() models.PrayerTimes {
	return models.PrayerTimes{
		Date: "2026-10-14", HijriDate: "21 Rabi al-Thani 1448",
		Fajr: "05:30", Dhuhr: "12:30", Asr: "15:45", Maghrib: "18:15", Isha: "19:30",
		Location: "Ripponpet, Karnataka",
	}
}

func Imam() models.Imam {
	return models.Imam{
		ID: "i-1", Name: "Maulana Ismail Qasmi", Phone: "9888877777", Qualification: "Alim, Hafiz",
		ExperienceYears: 12, AppointmentDate: "2020-06-01", IsActive: true,
	}
}

func Announcements() []models.Announcement {
	return []models.Announcement{
		{
			ID: "a-2", Title: "Jumu'ah timing", Content: "Khutbah starts at 1:15 PM", CreatedBy: "Secretary",
			CreatedAt: models.Timestamp{Time: time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC)},
			IsActive: true, Priority: models.PriorityHigh,
		},
		{
			ID: "a-1", Title: "Monthly meeting", Content: "Committee meets after Isha on Friday", CreatedBy: "Secretary",
			CreatedAt: fixtureDate, IsActive: true, Priority: models.PriorityNormal,
		},
	}
}

// Seed registers successful answers for every read endpoint.
func (s *Server) Seed() *Server {
	s.Reply(http.MethodGet, "/", http.StatusOK, map[string]string{"message": "Masjid API"})
	s.Reply(http.MethodGet, "/members", http.StatusOK, Members())
	s.Reply(http.MethodGet, "/payments", http.StatusOK, Payments())
	s.Reply(http.MethodGet, "/dashboard/stats", http.StatusOK, Stats())
	s.Reply(http.MethodGet, "/prayer-times", http.StatusOK, Prayers())
	s.Reply(http.MethodGet, "/imam", http.StatusOK, Imam())
	s.Reply(http.MethodGet, "/announcements", http.StatusOK, Announcements())
	for _, m := range Members() {
		s.Reply(http.MethodGet, "/members/"+m.ID, http.StatusOK, m)
		var own []models.Payment
		for _, p := range Payments() {
			if p.MemberID == m.ID {
				own = append(own, p)
			}
		}
		s.Reply(http.MethodGet, "/payments/member/"+m.ID, http.StatusOK, own)
	}
	return s
}
