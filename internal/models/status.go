package models

// Status représente le cycle de vie d'une commande.
// Séquence avant: pending → confirmed → processing → shipped → delivered.
// cancelled est atteignable depuis tout état non terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses liste les six statuts dans l'ordre de la séquence.
var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var forwardSequence = []Status{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
}

// ParseStatus valide une valeur brute contre l'énumération fermée
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	for _, known := range AllStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// IsTerminal indique si aucun changement de statut n'est possible
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next retourne le statut suivant de la séquence avant (vide si terminal)
func (s Status) Next() (Status, bool) {
	for i, step := range forwardSequence {
		if step == s && i+1 < len(forwardSequence) {
			return forwardSequence[i+1], true
		}
	}
	return "", false
}

// CanTransition vérifie qu'un passage de statut est autorisé
func CanTransition(from, to Status) bool {
	if to == StatusCancelled {
		return !from.IsTerminal()
	}
	next, ok := from.Next()
	return ok && next == to
}

var statusEmojis = map[Status]string{
	StatusPending:    "⏳",
	StatusConfirmed:  "✅",
	StatusProcessing: "⚙️",
	StatusShipped:    "📦",
	StatusDelivered:  "🎉",
	StatusCancelled:  "❌",
}

var statusLabels = map[string]map[Status]string{
	"en": {
		StatusPending:    "Pending",
		StatusConfirmed:  "Confirmed",
		StatusProcessing: "Processing",
		StatusShipped:    "Shipped",
		StatusDelivered:  "Delivered",
		StatusCancelled:  "Cancelled",
	},
	"ru": {
		StatusPending:    "Ожидание",
		StatusConfirmed:  "Подтверждён",
		StatusProcessing: "Обработка",
		StatusShipped:    "Отправлен",
		StatusDelivered:  "Доставлен",
		StatusCancelled:  "Отменён",
	},
	"vi": {
		StatusPending:    "Đang chờ",
		StatusConfirmed:  "Đã xác nhận",
		StatusProcessing: "Đang xử lý",
		StatusShipped:    "Đã gửi",
		StatusDelivered:  "Đã giao",
		StatusCancelled:  "Đã hủy",
	},
}

// Emoji retourne le pictogramme associé au statut
func (s Status) Emoji() string {
	if e, ok := statusEmojis[s]; ok {
		return e
	}
	return "📋"
}

// Label retourne le libellé localisé (ex: "Ожидание")
func (s Status) Label(lang string) string {
	labels, ok := statusLabels[lang]
	if !ok {
		labels = statusLabels["en"]
	}
	if label, ok := labels[s]; ok {
		return label
	}
	return string(s)
}
