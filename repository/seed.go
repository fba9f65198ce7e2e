package repository

import (
	"time"

	"legalconsult-backend/models"
)

// seedUpdated is the revision date of the built-in knowledge base
var seedUpdated = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultReferenceEntries returns the built-in Saudi legal knowledge base
// used when neither a knowledge pack nor the legal_references table is
// available. Each call returns a fresh slice.
func DefaultReferenceEntries() []models.LegalReferenceEntry {
	entries := []models.LegalReferenceEntry{
		// labor_law
		{
			ID:           "labor-001",
			Title:        "حقوق العامل",
			LawName:      "نظام العمل",
			ArticleLabel: "المادة 61",
			BodyText:     "من حقوق العامل في نظام العمل أن يمتنع صاحب العمل عن تشغيله سخرة، وأن يعامله بالاحترام اللائق، وأن يدفع أجره في موعده دون اقتطاع إلا في الحالات المنصوص عليها",
			Category:     "labor_law",
		},
		{
			ID:           "labor-002",
			Title:        "مكافأة نهاية الخدمة",
			LawName:      "نظام العمل",
			ArticleLabel: "المادة 84",
			BodyText:     "إذا انتهت علاقة العمل وجب على صاحب العمل أن يدفع إلى العامل مكافأة عن مدة خدمته تحسب على أساس أجر نصف شهر عن كل سنة من السنوات الخمس الأولى وأجر شهر عن كل سنة من السنوات التالية",
			Category:     "labor_law",
		},
		{
			ID:           "labor-003",
			Title:        "الإجازة السنوية",
			LawName:      "نظام العمل",
			ArticleLabel: "المادة 109",
			BodyText:     "يستحق العامل عن كل عام إجازة سنوية لا تقل مدتها عن واحد وعشرين يوما تزاد إلى مدة لا تقل عن ثلاثين يوما إذا أمضى العامل في خدمة صاحب العمل خمس سنوات متصلة وتكون الإجازة بأجر يدفع مقدما",
			Category:     "labor_law",
		},
		{
			ID:           "labor-004",
			Title:        "إنهاء عقد العمل",
			LawName:      "نظام العمل",
			ArticleLabel: "المادة 74",
			BodyText:     "ينتهي عقد العمل إذا اتفق الطرفان على إنهائه بشرط أن تكون موافقة العامل كتابية، أو إذا انتهت المدة المحددة في العقد، أو بناء على إرادة أحد الطرفين في العقود غير محددة المدة",
			Category:     "labor_law",
		},

		// commercial_law
		{
			ID:           "commercial-001",
			Title:        "تسجيل السجل التجاري",
			LawName:      "نظام السجل التجاري",
			ArticleLabel: "المادة 2",
			BodyText:     "يجب على كل تاجر أن يطلب قيد اسمه في السجل التجاري خلال ثلاثين يوما من تاريخ افتتاح محله التجاري أو تملكه له أو من تاريخ تأسيس الشركة",
			Category:     "commercial_law",
		},
		{
			ID:           "commercial-002",
			Title:        "مسؤولية الشركاء في الشركة ذات المسؤولية المحدودة",
			LawName:      "نظام الشركات",
			ArticleLabel: "المادة 155",
			BodyText:     "الشركة ذات المسؤولية المحدودة شركة تتكون من شخص أو أكثر ولا يسأل الشريك فيها عن ديون الشركة والالتزامات المترتبة عليها إلا بقدر حصته في رأس المال",
			Category:     "commercial_law",
		},
		{
			ID:           "commercial-003",
			Title:        "الأوراق التجارية",
			LawName:      "نظام الأوراق التجارية",
			ArticleLabel: "المادة 1",
			BodyText:     "الكمبيالة ورقة تجارية تتضمن أمرا من الساحب إلى المسحوب عليه بدفع مبلغ معين من النقود في تاريخ معين لأمر المستفيد وتخضع لأحكام نظام الأوراق التجارية",
			Category:     "commercial_law",
		},

		// family_law
		{
			ID:           "family-001",
			Title:        "حضانة الأطفال",
			LawName:      "نظام الأحوال الشخصية",
			ArticleLabel: "المادة 127",
			BodyText:     "الحضانة حفظ من لا يستقل بأمر نفسه وتربيته ورعايته بما يحقق مصلحته، وتكون الحضانة للأم ثم للأب ثم لأم الأم مع مراعاة مصلحة المحضون",
			Category:     "family_law",
		},
		{
			ID:           "family-002",
			Title:        "النفقة الزوجية",
			LawName:      "نظام الأحوال الشخصية",
			ArticleLabel: "المادة 45",
			BodyText:     "تجب نفقة الزوجة على زوجها من حين العقد الصحيح إذا سلمت نفسها إليه، وتشمل النفقة الطعام والكسوة والسكن والحاجيات الأساسية بحسب العرف",
			Category:     "family_law",
		},
		{
			ID:           "family-003",
			Title:        "الصلح في المنازعات الأسرية",
			LawName:      "نظام المرافعات الشرعية",
			ArticleLabel: "المادة 70",
			BodyText:     "للمحكمة في قضايا الأحوال الشخصية أن تحيل الدعوى إلى مكاتب الصلح والإصلاح الأسري قبل نظرها لمحاولة التوفيق بين الطرفين",
			Category:     "family_law",
		},

		// criminal_law
		{
			ID:           "criminal-001",
			Title:        "حقوق المتهم",
			LawName:      "نظام الإجراءات الجزائية",
			ArticleLabel: "المادة 4",
			BodyText:     "يحق لكل متهم أن يستعين بوكيل أو محام للدفاع عنه في مرحلتي التحقيق والمحاكمة، ولا يجوز القبض على أي إنسان أو توقيفه إلا بأمر من السلطة المختصة",
			Category:     "criminal_law",
		},
		{
			ID:           "criminal-002",
			Title:        "مدة التوقيف",
			LawName:      "نظام الإجراءات الجزائية",
			ArticleLabel: "المادة 114",
			BodyText:     "ينتهي التوقيف بمضي خمسة أيام إلا إذا رأى المحقق تمديده فيجب قبل انقضائها عرض الأوراق على رئيس فرع هيئة التحقيق والادعاء العام",
			Category:     "criminal_law",
		},

		// civil_law
		{
			ID:           "civil-001",
			Title:        "التعويض عن الضرر",
			LawName:      "نظام المعاملات المدنية",
			ArticleLabel: "المادة 120",
			BodyText:     "كل خطأ سبب ضررا للغير يلزم من ارتكبه بالتعويض، ويشمل التعويض ما لحق المتضرر من خسارة وما فاته من كسب",
			Category:     "civil_law",
		},
		{
			ID:           "civil-002",
			Title:        "تقادم الدعوى",
			LawName:      "نظام المعاملات المدنية",
			ArticleLabel: "المادة 295",
			BodyText:     "لا تسمع الدعوى المتعلقة بأي حق بمضي عشر سنوات من تاريخ استحقاق الحق إلا في الحالات التي ينص فيها النظام على مدة أخرى",
			Category:     "civil_law",
		},

		// real_estate_law
		{
			ID:           "real-estate-001",
			Title:        "التسجيل العيني للعقار",
			LawName:      "نظام التسجيل العيني للعقار",
			ArticleLabel: "المادة 22",
			BodyText:     "جميع التصرفات التي من شأنها إنشاء حق من الحقوق العينية العقارية أو نقله أو تغييره أو زواله يجب قيدها في السجل العقاري ولا تكون نافذة قبل القيد",
			Category:     "real_estate_law",
		},
		{
			ID:           "real-estate-002",
			Title:        "عقد الإيجار",
			LawName:      "نظام إيجار",
			ArticleLabel: "المادة 3",
			BodyText:     "يلتزم المؤجر والمستأجر بتوثيق عقد الإيجار السكني أو التجاري عبر الشبكة الإلكترونية لخدمات الإيجار ويعد العقد الموثق سندا تنفيذيا",
			Category:     "real_estate_law",
		},

		// administrative_law
		{
			ID:           "administrative-001",
			Title:        "التظلم من القرارات الإدارية",
			LawName:      "نظام المرافعات أمام ديوان المظالم",
			ArticleLabel: "المادة 8",
			BodyText:     "يجب على صاحب الشأن التظلم إلى الجهة الإدارية مصدرة القرار خلال ستين يوما من تاريخ العلم به قبل رفع دعوى الإلغاء أمام المحكمة الإدارية",
			Category:     "administrative_law",
		},
		{
			ID:           "administrative-002",
			Title:        "اختصاص المحاكم الإدارية",
			LawName:      "نظام ديوان المظالم",
			ArticleLabel: "المادة 13",
			BodyText:     "تختص المحاكم الإدارية بالفصل في دعاوى إلغاء القرارات الإدارية النهائية ودعاوى التعويض عن قرارات أو أعمال جهة الإدارة والدعاوى المتعلقة بالعقود الإدارية",
			Category:     "administrative_law",
		},
	}

	for i := range entries {
		entries[i].LastUpdated = seedUpdated
	}
	return entries
}
