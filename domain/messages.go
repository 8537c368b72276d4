package domain

// Client-facing messages. The storefront is Arabic-first.
const (
	MsgNotAuthorizedRoute  = "غير مصرح لك بالوصول لهذا المسار"
	MsgInvalidToken        = "رمز المصادقة غير صحيح"
	MsgTokenExpired        = "انتهت صلاحية رمز المصادقة"
	MsgUserNotFound        = "المستخدم غير موجود"
	MsgInvalidCredentials  = "بيانات الدخول غير صحيحة"
	MsgUserExists          = "المستخدم موجود بالفعل"
	MsgRequiredFields      = "يرجى ملء جميع الحقول المطلوبة"
	MsgLoginFieldsRequired = "يرجى إدخال البريد الإلكتروني وكلمة المرور"
	MsgPasswordTooShort    = "كلمة المرور يجب أن تكون 6 أحرف على الأقل"
	MsgPasswordFields      = "يرجى إدخال كلمة المرور الحالية والجديدة"
	MsgNewPasswordTooShort = "كلمة المرور الجديدة يجب أن تكون 6 أحرف على الأقل"
	MsgWrongPassword       = "كلمة المرور الحالية غير صحيحة"
	MsgRegistered          = "تم إنشاء الحساب بنجاح"
	MsgLoggedIn            = "تم تسجيل الدخول بنجاح"
	MsgProfileUpdated      = "تم تحديث الملف الشخصي"
	MsgPasswordChanged     = "تم تغيير كلمة المرور بنجاح"

	MsgProductNotFound = "المنتج غير موجود"
	MsgOfferNotFound   = "العرض غير موجود"
	MsgOrderNotFound   = "الطلب غير موجود"
	MsgOrderCreated    = "تم إنشاء الطلب بنجاح"
	MsgOrderUpdated    = "تم تحديث حالة الطلب"
	MsgInvalidStatus   = "حالة الطلب غير صحيحة"

	MsgSettingsUpdated = "تم تحديث الإعدادات بنجاح"
	MsgContactUpdated  = "تم تحديث معلومات التواصل"

	MsgImagesOnly      = "يُسمح فقط بملفات الصور"
	MsgNoFile          = "لم يتم اختيار ملف"
	MsgNoFiles         = "لم يتم اختيار ملفات"
	MsgFileTooLarge    = "حجم الملف أكبر من الحد المسموح"
	MsgTooManyFiles    = "عدد الملفات أكبر من الحد المسموح"
	MsgImageUploaded   = "تم رفع الصورة بنجاح"
	MsgImagesUploaded  = "تم رفع %d صورة بنجاح"
	MsgFileNotFound    = "الملف غير موجود"
	MsgImageDeleted    = "تم حذف الصورة بنجاح"
	MsgInvalidFilename = "اسم الملف غير صحيح"

	MsgResourceNotFound = "المورد غير موجود"
	MsgRouteNotFound    = "المسار غير موجود - %s"
	MsgDuplicate        = "البيانات مكررة"
	MsgDatabaseError    = "خطأ في قاعدة البيانات"
	MsgServerError      = "خطأ في الخادم"
	MsgTooManyRequests  = "تم تجاوز الحد المسموح من الطلبات، يرجى المحاولة لاحقاً"
)
