package invoice

import (
	"strings"

	"github.com/sangkips/backoffice-api/pkg/ledger"
)

// Language is a supported print language.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// Direction is the HTML dir attribute for the language.
func (l Language) Direction() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// ParseLanguage reads a language code or an Accept-Language header value and
// returns the first supported language, or fallback when none matches.
func ParseLanguage(raw string, fallback Language) Language {
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0])
		switch Language(base) {
		case English:
			return English
		case Arabic:
			return Arabic
		}
	}
	return fallback
}

type labels struct {
	billNumber  string
	date        string
	party       map[string]string
	phone       string
	item        string
	quantity    string
	unitPrice   string
	discountPct string
	lineTotal   string
	subtotal    string
	tax         string
	discount    string
	total       string
	paid        string
	due         string
	status      string
	payments    string
	method      string
	notes       string
	taxID       string
	product     string
	thankYou    string
	titles      map[string]string
	statuses    map[ledger.PaymentStatus]string
	methods     map[ledger.PaymentMethod]string
}

const titleDebt = "debt"

var translations = map[Language]labels{
	English: {
		billNumber:  "No.",
		date:        "Date",
		party:       map[string]string{"customer": "Customer", "trader": "Trader", "wholesaler": "Wholesaler"},
		phone:       "Phone",
		item:        "Item",
		quantity:    "Qty",
		unitPrice:   "Unit Price",
		discountPct: "Disc. %",
		lineTotal:   "Total",
		subtotal:    "Subtotal",
		tax:         "Tax",
		discount:    "Discount",
		total:       "Total",
		paid:        "Amount Paid",
		due:         "Amount Due",
		status:      "Status",
		payments:    "Payments",
		method:      "Method",
		notes:       "Notes",
		taxID:       "Tax ID",
		product:     "Product",
		thankYou:    "Thank you for your business",
		titles: map[string]string{
			string(ledger.KindCustomerBill):    "Customer Bill",
			string(ledger.KindTraderBill):      "Trader Bill",
			string(ledger.KindWholesalerOrder): "Wholesaler Order",
			string(ledger.KindInvoice):         "Invoice",
			titleDebt:                          "Customer Debt",
		},
		statuses: map[ledger.PaymentStatus]string{
			ledger.StatusUnpaid:  "Unpaid",
			ledger.StatusPartial: "Partially Paid",
			ledger.StatusPaid:    "Paid",
		},
		methods: map[ledger.PaymentMethod]string{
			ledger.MethodCash:         "Cash",
			ledger.MethodCard:         "Card",
			ledger.MethodBankTransfer: "Bank Transfer",
			ledger.MethodCheck:        "Check",
			ledger.MethodOther:        "Other",
		},
	},
	Arabic: {
		billNumber:  "رقم",
		date:        "التاريخ",
		party:       map[string]string{"customer": "الزبون", "trader": "التاجر", "wholesaler": "تاجر الجملة"},
		phone:       "الهاتف",
		item:        "الصنف",
		quantity:    "الكمية",
		unitPrice:   "سعر الوحدة",
		discountPct: "الخصم %",
		lineTotal:   "المجموع",
		subtotal:    "المجموع الفرعي",
		tax:         "الضريبة",
		discount:    "الخصم",
		total:       "الإجمالي",
		paid:        "المبلغ المدفوع",
		due:         "المبلغ المتبقي",
		status:      "الحالة",
		payments:    "الدفعات",
		method:      "طريقة الدفع",
		notes:       "ملاحظات",
		taxID:       "الرقم الضريبي",
		product:     "منتج",
		thankYou:    "شكراً لتعاملكم معنا",
		titles: map[string]string{
			string(ledger.KindCustomerBill):    "فاتورة زبون",
			string(ledger.KindTraderBill):      "فاتورة تاجر",
			string(ledger.KindWholesalerOrder): "طلبية تاجر جملة",
			string(ledger.KindInvoice):         "فاتورة",
			titleDebt:                          "دين زبون",
		},
		statuses: map[ledger.PaymentStatus]string{
			ledger.StatusUnpaid:  "غير مدفوع",
			ledger.StatusPartial: "مدفوع جزئياً",
			ledger.StatusPaid:    "مدفوع",
		},
		methods: map[ledger.PaymentMethod]string{
			ledger.MethodCash:         "نقداً",
			ledger.MethodCard:         "بطاقة",
			ledger.MethodBankTransfer: "تحويل بنكي",
			ledger.MethodCheck:        "شيك",
			ledger.MethodOther:        "أخرى",
		},
	},
}

func labelsFor(l Language) labels {
	if t, ok := translations[l]; ok {
		return t
	}
	return translations[English]
}
