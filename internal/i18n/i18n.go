package i18n

import (
	"fmt"
	"strings"
)

// DefaultLang is the language every message falls back to. The product is
// Arabic-facing, so Arabic is the authoritative catalog.
const DefaultLang = "ar"

var catalogs = map[string]map[string]string{
	"ar": {
		"invalid_code":          "❌ كود خاطئ. حاول مرة أخرى.",
		"credentials_invalid":   "تعذر التحقق من بيانات الدخول.",
		"admin_only":            "هذه العملية متاحة للأدمن فقط.",
		"connection_error":      "❌ خطأ في الاتصال بالخادم.",
		"greeting":              "✅ هلا بك %s!\nجاهز استقبل طلباتك.",
		"user_added":            "✅ تم إضافة المستخدم بنجاح.",
		"user_updated":          "✅ تم تحديث %s.",
		"user_deleted":          "✅ تم الحذف.",
		"user_not_found":        "❌ المستخدم غير موجود.",
		"code_in_use":           "❌ هذا الكود مستخدم بالفعل.",
		"code_length":           "❌ الكود يجب أن يكون 8 حروف/أرقام بالضبط.",
		"name_too_long":         "❌ الاسم طويل جداً (حد أقصى 100 حرف).",
		"phone_invalid":         "❌ رقم الهاتف يجب أن يتكون من 10 أرقام بالضبط وأن يبدأ بـ '05'.",
		"last_admin":            "❌ لا يمكن حذف الأدمن الوحيد.",
		"field_not_allowed":     "❌ محاولة تعديل حقل غير مسموح به.",
		"location_added":        "✅ تم إضافة الموقع بنجاح.",
		"location_deleted":      "✅ تم حذف الموقع.",
		"location_not_found":    "❌ الموقع غير موجود.",
		"location_exists":       "❌ هذا الموقع موجود بالفعل.",
		"location_name_empty":   "❌ اسم الموقع لا يمكن أن يكون فارغاً.",
		"location_name_long":    "❌ اسم الموقع طويل جداً (حد أقصى 100 حرف).",
		"locations_updated":     "✅ تم تحديث المواقع بنجاح.",
		"user_location_added":   "✅ تم إضافة الموقع للمستخدم.",
		"user_location_exists":  "❌ هذا الموقع موجود بالفعل لدى المستخدم.",
		"user_location_removed": "✅ تم إزالة الموقع.",
		"order_not_found":       "❌ الطلب غير موجود.",
		"order_saved":           "✅ تم تسجيل طلبك بنجاح! راح نتواصل معك قريب.",
		"order_failed":          "❌ حدث خطأ أثناء حفظ الطلب. يرجى المحاولة لاحقاً.",
		"ai_unavailable":        "عذراً، نظام الذكاء الاصطناعي غير متصل حالياً.",
		"ai_error":              "معليش، صار خطأ في النظام. يرجى إعادة محاولة الجملة الأخيرة 🙏",
		"unexpected_error":      "❌ خطأ غير متوقع.",
		"invalid_payload":       "❌ صيغة الطلب غير صحيحة.",
	},
	"en": {
		"invalid_code":          "❌ Invalid code. Try again.",
		"credentials_invalid":   "Could not validate credentials.",
		"admin_only":            "This operation is restricted to admins.",
		"connection_error":      "❌ Could not reach the server.",
		"greeting":              "✅ Welcome %s!\nReady to take your orders.",
		"user_added":            "✅ User added successfully.",
		"user_updated":          "✅ Updated %s.",
		"user_deleted":          "✅ Deleted.",
		"user_not_found":        "❌ User not found.",
		"code_in_use":           "❌ This code is already in use.",
		"code_length":           "❌ The code must be exactly 8 characters.",
		"name_too_long":         "❌ Name too long (100 characters max).",
		"phone_invalid":         "❌ The phone number must be exactly 10 digits and start with '05'.",
		"last_admin":            "❌ The only remaining admin cannot be deleted.",
		"field_not_allowed":     "❌ Attempt to update a disallowed field.",
		"location_added":        "✅ Location added successfully.",
		"location_deleted":      "✅ Location deleted.",
		"location_not_found":    "❌ Location not found.",
		"location_exists":       "❌ This location already exists.",
		"location_name_empty":   "❌ The location name cannot be empty.",
		"location_name_long":    "❌ Location name too long (100 characters max).",
		"locations_updated":     "✅ Locations updated successfully.",
		"user_location_added":   "✅ Location assigned to the user.",
		"user_location_exists":  "❌ The user already has this location.",
		"user_location_removed": "✅ Location removed.",
		"order_not_found":       "❌ Order not found.",
		"order_saved":           "✅ Your order has been recorded! We will contact you soon.",
		"order_failed":          "❌ Saving the order failed. Please try again later.",
		"ai_unavailable":        "Sorry, the assistant is currently offline.",
		"ai_error":              "Sorry, something went wrong. Please resend your last message 🙏",
		"unexpected_error":      "❌ Unexpected error.",
		"invalid_payload":       "❌ Malformed request payload.",
	},
}

// DetectLanguage picks a supported language from an Accept-Language header
// value, falling back to Arabic.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(lang, "-;"); i >= 0 {
			lang = lang[:i]
		}
		if _, ok := catalogs[lang]; ok {
			return lang
		}
	}
	return DefaultLang
}

// T resolves a message code for the given language. Unknown languages fall
// back to Arabic; unknown codes fall back to the code itself so a missing
// entry is visible instead of silent.
func T(lang, code string) string {
	if c, ok := catalogs[lang]; ok {
		if msg, ok := c[code]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLang][code]; ok {
		return msg
	}
	return code
}

// Tf resolves a message code and applies fmt-style arguments.
func Tf(lang, code string, args ...interface{}) string {
	return fmt.Sprintf(T(lang, code), args...)
}
